package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pressroom/internal/auth"
	"pressroom/internal/cache"
	"pressroom/internal/http/middleware"
	"pressroom/internal/model"
	"pressroom/internal/repository"
	repoMocks "pressroom/internal/repository/mocks"
	"pressroom/internal/service"
	serviceMocks "pressroom/internal/service/mocks"
	storageMocks "pressroom/internal/storage/mocks"
)

const (
	memberID  = "0b7f3c1e-5a4d-4c2b-9e8f-1a2b3c4d5e6f"
	adminID   = "9e8d7c6b-5a49-4382-a716-a5b4c3d2e1f0"
	articleID = "3f2e1d0c-b9a8-4766-9544-332211009988"
	mediaID   = "5c4b3a29-1807-4f6e-8d5c-4b3a29180706"
)

var (
	member = auth.Identity{ID: memberID, Role: model.RoleUser, Name: "Ines"}
	admin  = auth.Identity{ID: adminID, Role: model.RoleAdmin, Name: "Root"}

	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x42}, 64)...)
)

type stubVerifier map[string]auth.Identity

func (s stubVerifier) Verify(token string) (auth.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return auth.Identity{}, auth.ErrInvalidToken
}

var tokens = stubVerifier{"member-token": member, "admin-token": admin}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type mockServices struct {
	users        *serviceMocks.MockUserService
	articles     *serviceMocks.MockArticleService
	banners      *serviceMocks.MockBannerService
	biographies  *serviceMocks.MockBiographyService
	publications *serviceMocks.MockPublicationService
	comments     *serviceMocks.MockCommentService
	media        *serviceMocks.MockMediaService
}

func (m *mockServices) services() Services {
	return Services{
		Users:        m.users,
		Articles:     m.articles,
		Banners:      m.banners,
		Biographies:  m.biographies,
		Publications: m.publications,
		Comments:     m.comments,
		Media:        m.media,
	}
}

func (m *mockServices) assertNoneCalled(t *testing.T) {
	t.Helper()
	for _, mk := range []*mock.Mock{
		&m.users.Mock, &m.articles.Mock, &m.banners.Mock, &m.biographies.Mock,
		&m.publications.Mock, &m.comments.Mock, &m.media.Mock,
	} {
		assert.Empty(t, mk.Calls)
	}
}

func newApp(svc Services, verifier middleware.TokenVerifier) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	RegisterRoutes(app, okPinger{}, verifier, svc)
	return app
}

func newMockedApp() (*fiber.App, *mockServices) {
	m := &mockServices{
		users:        new(serviceMocks.MockUserService),
		articles:     new(serviceMocks.MockArticleService),
		banners:      new(serviceMocks.MockBannerService),
		biographies:  new(serviceMocks.MockBiographyService),
		publications: new(serviceMocks.MockPublicationService),
		comments:     new(serviceMocks.MockCommentService),
		media:        new(serviceMocks.MockMediaService),
	}
	return newApp(m.services(), tokens), m
}

// apiResponse decodes both the success and the error envelope.
type apiResponse struct {
	Success   bool              `json:"success"`
	Data      json.RawMessage   `json:"data"`
	Meta      *meta             `json:"meta"`
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Fields    map[string]string `json:"fields"`
	RequestID string            `json:"request_id"`
}

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func send(t *testing.T, app *fiber.App, r request) (*http.Response, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(r.method, r.path, r.body)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	var out apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func jsonBody(t *testing.T, v any) (io.Reader, string) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b), fiber.MIMEApplicationJSON
}

type filePart struct {
	field, name string
	content     []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("connection refused"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Code)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", service.NewValidationError("title", "cannot be blank"), 400, "VALIDATION_ERROR"},
		{"no file", service.ErrNoFile, 400, "NO_FILE"},
		{"unsupported type", fmt.Errorf("%w: text/plain", service.ErrUnsupportedMediaType), 400, "UNSUPPORTED_MEDIA_TYPE"},
		{"bad credentials", service.ErrInvalidCredentials, 401, "UNAUTHORIZED"},
		{"bad token", auth.ErrInvalidToken, 401, "UNAUTHORIZED"},
		{"forbidden", fmt.Errorf("%w: not the author", service.ErrForbidden), 403, "FORBIDDEN"},
		{"not found", service.ErrNotFound, 404, "NOT_FOUND"},
		{"throttled", service.ErrTooManyAttempts, 429, "TOO_MANY_ATTEMPTS"},
		{"remote store", fmt.Errorf("%w: put object: timeout", service.ErrRemoteStore), 502, "REMOTE_STORE_ERROR"},
		{"fiber bad request", fiber.NewError(fiber.StatusBadRequest, "invalid request body"), 400, "BAD_REQUEST"},
		{"unexpected", errors.New("pq: relation \"articles\" does not exist"), 500, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
			app.Use(middleware.RequestID())
			app.Get("/x", func(c *fiber.Ctx) error { return tc.err })

			resp, body := send(t, app, request{method: "GET", path: "/x"})

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, resp.Header.Get(middleware.RequestIDHeader), body.RequestID)
		})
	}

	t.Run("validation carries fields", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
		app.Get("/x", func(c *fiber.Ctx) error {
			return &service.ValidationError{Fields: map[string]string{"email": "invalid email format", "name": "name is required"}}
		})
		_, body := send(t, app, request{method: "GET", path: "/x"})
		assert.Equal(t, map[string]string{"email": "invalid email format", "name": "name is required"}, body.Fields)
	})

	t.Run("internal detail is not leaked", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
		app.Get("/x", func(c *fiber.Ctx) error { return errors.New("dial tcp 10.0.0.5:5432: refused") })
		_, body := send(t, app, request{method: "GET", path: "/x"})
		assert.Equal(t, "internal server error", body.Error)
	})

	t.Run("unknown route", func(t *testing.T) {
		app, _ := newMockedApp()
		resp, body := send(t, app, request{method: "GET", path: "/nowhere"})
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", body.Code)
	})
}

func TestUserRoutes(t *testing.T) {
	user := &model.User{ID: memberID, Name: "Ines", Email: "ines@example.com", Role: model.RoleUser}

	t.Run("register", func(t *testing.T) {
		app, m := newMockedApp()
		in := service.RegisterInput{Name: "Ines", Email: "ines@example.com", Password: "hunter22"}
		m.users.On("Register", mock.Anything, in, model.RoleUser).
			Return(&service.AuthResult{Token: "signed", User: user}, nil).Once()

		b, ct := jsonBody(t, in)
		resp, body := send(t, app, request{method: "POST", path: "/users/register", body: b, contentType: ct})

		assert.Equal(t, 200, resp.StatusCode)
		assert.True(t, body.Success)
		res := decode[service.AuthResult](t, body.Data)
		assert.Equal(t, "signed", res.Token)
		assert.NotContains(t, string(body.Data), "passwordHash")
		m.users.AssertExpectations(t)
	})

	t.Run("admin register uses the admin role", func(t *testing.T) {
		app, m := newMockedApp()
		in := service.RegisterInput{Name: "Root", Email: "root@example.com", Password: "hunter22"}
		m.users.On("Register", mock.Anything, in, model.RoleAdmin).
			Return(nil, fmt.Errorf("%w: admin registration is disabled", service.ErrForbidden)).Once()

		b, ct := jsonBody(t, in)
		resp, body := send(t, app, request{method: "POST", path: "/users/admin/register", body: b, contentType: ct})

		assert.Equal(t, 403, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", body.Code)
		m.users.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		app, m := newMockedApp()
		resp, body := send(t, app, request{
			method: "POST", path: "/users/login",
			body: strings.NewReader("{"), contentType: fiber.MIMEApplicationJSON,
		})
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "BAD_REQUEST", body.Code)
		m.assertNoneCalled(t)
	})

	t.Run("login and admin login", func(t *testing.T) {
		app, m := newMockedApp()
		in := service.LoginInput{Email: "ines@example.com", Password: "hunter22"}
		m.users.On("Login", mock.Anything, in, false).Return(&service.AuthResult{Token: "t1", User: user}, nil).Once()
		m.users.On("Login", mock.Anything, in, true).Return(nil, fmt.Errorf("%w: admin access required", service.ErrForbidden)).Once()

		b, ct := jsonBody(t, in)
		resp, _ := send(t, app, request{method: "POST", path: "/users/login", body: b, contentType: ct})
		assert.Equal(t, 200, resp.StatusCode)

		b, ct = jsonBody(t, in)
		resp, _ = send(t, app, request{method: "POST", path: "/users/admin/login", body: b, contentType: ct})
		assert.Equal(t, 403, resp.StatusCode)
		m.users.AssertExpectations(t)
	})

	t.Run("wrong password is 401 and throttling is 429", func(t *testing.T) {
		app, m := newMockedApp()
		in := service.LoginInput{Email: "ines@example.com", Password: "nope"}
		m.users.On("Login", mock.Anything, in, false).Return(nil, service.ErrInvalidCredentials).Once()
		m.users.On("Login", mock.Anything, in, false).Return(nil, service.ErrTooManyAttempts).Once()

		b, ct := jsonBody(t, in)
		resp, _ := send(t, app, request{method: "POST", path: "/users/login", body: b, contentType: ct})
		assert.Equal(t, 401, resp.StatusCode)

		b, ct = jsonBody(t, in)
		resp, _ = send(t, app, request{method: "POST", path: "/users/login", body: b, contentType: ct})
		assert.Equal(t, 429, resp.StatusCode)
	})

	t.Run("profile", func(t *testing.T) {
		app, m := newMockedApp()

		resp, _ := send(t, app, request{method: "GET", path: "/users/profile"})
		assert.Equal(t, 401, resp.StatusCode)

		m.users.On("Me", mock.Anything, member).Return(user, nil).Once()
		resp, body := send(t, app, request{method: "GET", path: "/users/profile", token: "member-token"})
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "Ines", decode[model.User](t, body.Data).Name)

		name := "Ines M."
		m.users.On("UpdateProfile", mock.Anything, member, service.UpdateProfileInput{Name: &name}).
			Return(&model.User{ID: memberID, Name: name}, nil).Once()
		b, ct := jsonBody(t, map[string]string{"name": name})
		resp, body = send(t, app, request{method: "PUT", path: "/users/profile", token: "member-token", body: b, contentType: ct})
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, name, decode[model.User](t, body.Data).Name)
		m.users.AssertExpectations(t)
	})

	t.Run("user admin", func(t *testing.T) {
		app, m := newMockedApp()

		resp, _ := send(t, app, request{method: "GET", path: "/users", token: "member-token"})
		assert.Equal(t, 403, resp.StatusCode)

		m.users.On("List", mock.Anything, service.Page{Page: 2, Limit: 5}).
			Return(&service.ListResult[model.User]{Items: []model.User{*user}, Total: 6, Page: 2, Limit: 5, Pages: 2}, nil).Once()
		resp, body := send(t, app, request{method: "GET", path: "/users?page=2&limit=5", token: "admin-token"})
		assert.Equal(t, 200, resp.StatusCode)
		require.NotNil(t, body.Meta)
		assert.Equal(t, meta{Total: 6, Page: 2, Limit: 5, Pages: 2}, *body.Meta)
		assert.Len(t, decode[[]model.User](t, body.Data), 1)

		resp, body = send(t, app, request{method: "GET", path: "/users?page=two", token: "admin-token"})
		assert.Equal(t, 400, resp.StatusCode)
		assert.Contains(t, body.Fields, "page")

		resp, _ = send(t, app, request{method: "GET", path: "/users/not-a-uuid", token: "admin-token"})
		assert.Equal(t, 404, resp.StatusCode)

		m.users.On("Get", mock.Anything, memberID).Return(user, nil).Once()
		resp, _ = send(t, app, request{method: "GET", path: "/users/" + memberID, token: "admin-token"})
		assert.Equal(t, 200, resp.StatusCode)
		m.users.AssertExpectations(t)
	})
}

// memUsers is an in-memory UserRepository for flows that run the real
// user service.
type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*model.User
	email map[string]string
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*model.User{}, email: map[string]string{}}
}

func (r *memUsers) Create(_ context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.email[u.Email]; taken {
		return nil, repository.ErrDuplicate
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.email[u.Email] = u.ID
	return &cp, nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	id, ok := r.email[strings.ToLower(email)]
	r.mu.Unlock()
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r.FindByID(ctx, id)
}

func (r *memUsers) Update(_ context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	return &cp, nil
}

func (r *memUsers) List(_ context.Context, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return &repository.PageResult[model.User]{Items: out, Total: len(out)}, nil
}

func TestScenario_RegisterThenLogin(t *testing.T) {
	tokenSvc := auth.NewTokenService("scenario-secret", time.Hour, nil)
	users := service.NewUserService(newMemUsers(), auth.NewHasher(bcrypt.MinCost), tokenSvc, cache.NoopLoginLimiter{}, true)
	app := newApp(Services{Users: users}, tokenSvc)

	creds := map[string]string{"name": "A", "email": "a@x.com", "password": "secret1"}
	b, ct := jsonBody(t, creds)
	resp, body := send(t, app, request{method: "POST", path: "/users/register", body: b, contentType: ct})
	require.Equal(t, 200, resp.StatusCode, body.Error)
	registered := decode[service.AuthResult](t, body.Data)
	assert.NotEmpty(t, registered.Token)

	b, ct = jsonBody(t, map[string]string{"email": "a@x.com", "password": "secret1"})
	resp, body = send(t, app, request{method: "POST", path: "/users/login", body: b, contentType: ct})
	require.Equal(t, 200, resp.StatusCode, body.Error)
	loggedIn := decode[service.AuthResult](t, body.Data)

	id, err := tokenSvc.Verify(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, id.Role)
	assert.Equal(t, registered.User.ID, id.ID)

	b, ct = jsonBody(t, map[string]string{"email": "a@x.com", "password": "wrong-one"})
	resp, _ = send(t, app, request{method: "POST", path: "/users/login", body: b, contentType: ct})
	assert.Equal(t, 401, resp.StatusCode)

	resp, body = send(t, app, request{method: "GET", path: "/users/profile", token: loggedIn.Token})
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "a@x.com", decode[model.User](t, body.Data).Email)
}

func TestScenario_GatesRejectBeforeWork(t *testing.T) {
	app, m := newMockedApp()

	img, ct := multipartBody(t, map[string]string{"title": "t", "content": "c"}, filePart{"image", "a.jpg", jpegBytes})
	resp, body := send(t, app, request{method: "POST", path: "/articles", body: img, contentType: ct})
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body.Code)

	img, ct = multipartBody(t, map[string]string{"title": "t"}, filePart{"image", "a.jpg", jpegBytes})
	resp, body = send(t, app, request{method: "POST", path: "/banners", token: "member-token", body: img, contentType: ct})
	assert.Equal(t, 403, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Code)

	adminRoutes := []struct{ method, path string }{
		{"GET", "/users"},
		{"GET", "/users/" + memberID},
		{"POST", "/banners"},
		{"PUT", "/banners/" + mediaID},
		{"DELETE", "/banners/" + mediaID},
		{"POST", "/biography"},
		{"PUT", "/biography/" + mediaID},
		{"DELETE", "/biography/" + mediaID},
		{"POST", "/publications"},
		{"PUT", "/publications/" + mediaID},
		{"DELETE", "/publications/" + mediaID},
		{"GET", "/upload"},
		{"GET", "/upload/" + mediaID},
		{"POST", "/upload/image"},
		{"POST", "/upload/images"},
		{"POST", "/upload/pdf"},
		{"DELETE", "/upload/" + mediaID},
	}
	for _, r := range adminRoutes {
		resp, _ := send(t, app, request{method: r.method, path: r.path})
		assert.Equal(t, 401, resp.StatusCode, "%s %s without token", r.method, r.path)

		resp, _ = send(t, app, request{method: r.method, path: r.path, token: "member-token"})
		assert.Equal(t, 403, resp.StatusCode, "%s %s as member", r.method, r.path)

		resp, _ = send(t, app, request{method: r.method, path: r.path, token: "forged"})
		assert.Equal(t, 401, resp.StatusCode, "%s %s with forged token", r.method, r.path)
	}

	m.assertNoneCalled(t)
}

func TestScenario_ArticleWithCoverImage(t *testing.T) {
	app, m := newMockedApp()
	cover := &model.Asset{
		ID:           mediaID,
		URL:          "https://cdn.example.com/press/image/2026/10/5c4b3a29.jpg",
		PublicID:     "image/2026/10/5c4b3a29.jpg",
		ResourceType: model.ResourceImage,
	}
	stored := &model.Article{ID: articleID, Title: "Launch", Content: "Body", CoverImage: cover, AuthorID: memberID, Likes: []string{}}

	m.articles.On("Create", mock.Anything, member, mock.AnythingOfType("service.ArticleInput")).
		Run(func(args mock.Arguments) {
			in := args.Get(2).(service.ArticleInput)
			require.NotNil(t, in.Image)
			assert.Equal(t, "cover.jpg", in.Image.Name)
			got, err := io.ReadAll(in.Image.Reader)
			require.NoError(t, err)
			assert.Equal(t, jpegBytes, got)
			assert.Equal(t, "Launch", *in.Title)
			assert.Equal(t, []string{"press", "launch"}, in.Tags)
		}).
		Return(stored, nil).Once()
	m.articles.On("Get", mock.Anything, articleID).Return(stored, nil).Once()

	b, ct := multipartBody(t,
		map[string]string{"title": "Launch", "content": "Body", "tags": "press, launch"},
		filePart{"image", "cover.jpg", jpegBytes},
	)
	resp, body := send(t, app, request{method: "POST", path: "/articles", token: "member-token", body: b, contentType: ct})
	require.Equal(t, 200, resp.StatusCode, body.Error)
	created := decode[model.Article](t, body.Data)
	require.NotNil(t, created.CoverImage)
	assert.True(t, strings.HasPrefix(created.CoverImage.URL, "https://"))

	resp, body = send(t, app, request{method: "GET", path: "/articles/" + articleID})
	require.Equal(t, 200, resp.StatusCode)
	fetched := decode[model.Article](t, body.Data)
	assert.Equal(t, created.CoverImage.URL, fetched.CoverImage.URL)

	m.articles.AssertExpectations(t)
}

func TestScenario_PublicationRejectsTextFile(t *testing.T) {
	store := new(storageMocks.MockStorage)
	mediaRepo := new(repoMocks.MockMediaRepository)
	pubRepo := new(repoMocks.MockPublicationRepository)
	media := service.NewMediaService(store, mediaRepo, new(repoMocks.MockOrphanRepository))
	pubs := service.NewPublicationService(pubRepo, media)
	app := newApp(Services{Publications: pubs, Media: media}, tokens)

	b, ct := multipartBody(t,
		map[string]string{"title": "Collected Speeches"},
		filePart{"pdf", "speeches.txt", []byte("These are plain text notes, not a PDF document.\n")},
	)
	resp, body := send(t, app, request{method: "POST", path: "/publications", token: "admin-token", body: b, contentType: ct})

	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", body.Code)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mediaRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pubRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
