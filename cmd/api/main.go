// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/admin"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/album"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/artist"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/auth"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/config"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/health"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/middleware"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/server"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/song"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry, tracing disabled", "error", err)
		telemetry = core.NoopTelemetry(cfg.Otel.ServiceName)
	} else if telemetry.Provider != nil {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	connector := core.NewConnector(cfg.Database)
	db, err := connector.Database(ctx)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	var cache *core.Redis
	if cfg.Redis.URL != "" {
		cache, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	} else {
		logger.Info("redis not configured, rate limits are per instance")
	}

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"expire", cfg.JWT.Expire.String(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userSvc, tokens)
	authHandler := auth.NewHandler(authSvc)

	songSvc := song.NewService(song.NewRepository(db.DB))
	songHandler := song.NewHandler(songSvc)

	artistSvc := artist.NewService(artist.NewRepository(db.DB), songSvc)
	artistHandler := artist.NewHandler(artistSvc)

	albumSvc := album.NewService(album.NewRepository(db.DB), songSvc)
	albumHandler := album.NewHandler(albumSvc)

	if cfg.Admin.Email != "" {
		created, err := userSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return err
		}
		logger.Info("bootstrap admin checked",
			"email", cfg.Admin.Email,
			"created", created,
		)
	}

	var redisCheck health.Checker
	adminCfg := admin.HandlerConfig{
		DBStats: db.Stats,
		DBPing:  connector.Ping,
		Counters: map[string]admin.Counter{
			"users":   userSvc,
			"artists": artistSvc,
			"albums":  albumSvc,
			"songs":   songSvc,
		},
	}
	if cache != nil {
		redisCheck = cache
		adminCfg.RedisStats = cache.PoolStats
		adminCfg.RedisPing = cache.Ping
	}

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: connector},
		health.Dependency{Name: "redis", Checker: redisCheck},
	)
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	var rdb *redis.Client
	if cache != nil {
		rdb = cache.Raw()
	}

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing(telemetry.Tracer))
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen:   true,
			BypassFunc: isProbe,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authLimiter := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.AuthRequests,
			cfg.RateLimit.AuthBurst,
		),
		KeyFunc:  middleware.KeyByRoute("auth", middleware.KeyByIP),
		FailOpen: true,
	}).Handler

	authenticator := middleware.Authenticator(tokens)
	adminOnly := middleware.RequireAdmin(userSvc)

	router.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authLimiter)
		userHandler.RegisterRoutes(r, authenticator, adminOnly)
		artistHandler.RegisterRoutes(r, authenticator)
		albumHandler.RegisterRoutes(r)
		songHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	if err := cache.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := connector.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func isProbe(r *http.Request) bool {
	switch strings.TrimSuffix(r.URL.Path, "/") {
	case "/healthz", "/livez", "/readyz":
		return true
	}
	return false
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
