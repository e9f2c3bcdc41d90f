package middleware

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T, cfg ...fiber.Config) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New(cfg...)
	app.Use(m.Handler())
	return app, m, reg
}

func TestPrometheusMiddleware_CountsByStatus(t *testing.T) {
	app, m, _ := newMetricsApp(t)
	app.Get("/banners", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/banners", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/broken", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad request") })
	app.Get("/crash", func(c *fiber.Ctx) error { return errors.New("disk on fire") })

	for _, r := range []struct{ method, path string }{
		{"GET", "/banners"}, {"GET", "/banners"}, {"DELETE", "/banners"}, {"GET", "/broken"}, {"GET", "/crash"},
	} {
		_, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		require.NoError(t, err)
	}

	cases := []struct {
		method, path, status string
		want                 float64
	}{
		{"GET", "/banners", "200", 2},
		{"DELETE", "/banners", "200", 1},
		{"GET", "/broken", "400", 1},
		{"GET", "/crash", "500", 1},
	}
	for _, tc := range cases {
		got := testutil.ToFloat64(m.requestCount.WithLabelValues(tc.method, tc.path, tc.status))
		assert.Equal(t, tc.want, got, "%s %s %s", tc.method, tc.path, tc.status)
	}
}

func TestPrometheusMiddleware_LabelsSurviveLaterRequests(t *testing.T) {
	app, m, _ := newMetricsApp(t)
	app.Get("/banners", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/banners", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Options("/banners", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for _, method := range []string{"GET", "GET", "DELETE", "OPTIONS", "GET"} {
		_, err := app.Test(httptest.NewRequest(method, "/banners", nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 3, testutil.CollectAndCount(m.requestCount))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/banners", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/banners", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues("OPTIONS", "/banners", "204")))
}

// Behind LoggerWith the error is already rendered, so the counter sees the
// status the client received.
func TestPrometheusMiddleware_RenderedStatus(t *testing.T) {
	app, m, _ := newMetricsApp(t, fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusNotFound).SendString("missing")
		},
	})
	app.Use(LoggerWith(zerolog.New(io.Discard)))
	app.Get("/articles/:id", func(c *fiber.Ctx) error { return errors.New("no such article") })

	resp, err := app.Test(httptest.NewRequest("GET", "/articles/0b8e3d4c-7d52-4f3e-9a61-2c5f1e8a9b70", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/articles/:id", "404")))
}

func TestPrometheusMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	app, _, reg := newMetricsApp(t)
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		assert.Empty(t, mf.GetMetric(), mf.GetName())
	}
}

func TestPrometheusMiddleware_LabelsRoutePattern(t *testing.T) {
	app, m, _ := newMetricsApp(t)
	app.Get("/comments/comment/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, id := range []string{"6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b", "d2a7c1f0-5e84-4b39-b6de-0f3c9a7e1b25"} {
		_, err := app.Test(httptest.NewRequest("GET", "/comments/comment/"+id, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/comments/comment/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
