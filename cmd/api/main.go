package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"pressroom/docs"
	"pressroom/internal/auth"
	"pressroom/internal/cache"
	"pressroom/internal/config"
	"pressroom/internal/database"
	"pressroom/internal/database/migration"
	handlers "pressroom/internal/http/handler"
	"pressroom/internal/http/middleware"
	"pressroom/internal/logging"
	"pressroom/internal/otel"
	"pressroom/internal/repository/postgres"
	"pressroom/internal/service"
	"pressroom/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Pressroom API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logging.Init(cfg.Env)

	if err := run(cfg); err != nil {
		logging.Component("main").Fatal().Err(err).Msg("server exited")
	}
}

// run owns every resource it opens; deferred cleanup runs on both normal
// shutdown and startup failure.
func run(cfg *config.AppConfig) error {
	logger := logging.Component("main")

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
			return err
		}
	}

	objStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("initialize object storage: %w", err)
	}

	limiter, closeLimiter, err := loginLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	mediaRepo := postgres.NewMediaPostgres(db)
	orphanRepo := postgres.NewOrphanPostgres(db)
	articleRepo := postgres.NewArticlePostgres(db)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, nil)
	mediaSvc := service.NewMediaService(objStore, mediaRepo, orphanRepo)
	svc := handlers.Services{
		Users: service.NewUserService(
			postgres.NewUserPostgres(db),
			auth.NewHasher(cfg.Auth.BcryptCost),
			tokens,
			limiter,
			cfg.Auth.AllowAdminRegistration,
		),
		Articles:     service.NewArticleService(articleRepo, mediaSvc),
		Banners:      service.NewBannerService(postgres.NewBannerPostgres(db), mediaSvc),
		Biographies:  service.NewBiographyService(postgres.NewBiographyPostgres(db), mediaSvc),
		Publications: service.NewPublicationService(postgres.NewPublicationPostgres(db), mediaSvc),
		Comments:     service.NewCommentService(postgres.NewCommentPostgres(db), articleRepo),
		Media:        mediaSvc,
	}

	sweeper, err := service.NewOrphanSweeper(orphanRepo, objStore, cfg.Sweeper.BatchSize).Schedule(cfg.Sweeper.Schedule)
	if err != nil {
		return err
	}
	defer stopCron(sweeper)

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app := newApp(cfg, metrics)
	handlers.RegisterRoutes(app, db, tokens, svc)

	addr := ":" + cfg.Port
	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("event", "server_start").Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		errc <- app.Listen(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info().Str("event", "server_shutdown").Msg("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	}
}

// newApp builds the fiber app with global middleware, /metrics and the
// swagger UI. API routes are registered by the caller.
func newApp(cfg *config.AppConfig, metrics *middleware.PrometheusMiddleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	// Register global middleware
	app.Use(middleware.Recover())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(metrics.Handler())
	app.Use(middleware.Logger())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	return app
}

// loginLimiter throttles failed logins in Redis when REDIS_ADDR is set and
// disables throttling otherwise. The returned func closes the client.
func loginLimiter(ctx context.Context, cfg *config.AppConfig) (cache.LoginLimiter, func(), error) {
	if cfg.Redis.Addr == "" {
		return cache.NoopLoginLimiter{}, func() {}, nil
	}
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	return cache.NewRedisLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockWindow), func() { _ = rdb.Close() }, nil
}

func stopCron(c *cron.Cron) {
	if c == nil {
		return
	}
	<-c.Stop().Done()
}
