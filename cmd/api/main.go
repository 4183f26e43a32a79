// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Taskboard HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Connect to Redis when configured (identity cache).
//  6. Wire services, provision the bootstrap admin.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/taskboard/internal/api"
	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/platform/config"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/metrics"
	"github.com/taibuivan/taskboard/internal/platform/migration"
	pgstore "github.com/taibuivan/taskboard/internal/platform/postgres"
	redisstore "github.com/taibuivan/taskboard/internal/platform/redis"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/users/account"
	"github.com/taibuivan/taskboard/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("identity_cache", cfg.RedisURL != ""),
	)

	// Root context for startup. A deadline catches misconfiguration quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// Lives as long as the process; stops background sweepers on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Accounts, optionally behind the Redis identity cache ──────────
	userRepository := auth.NewUserRepository(pool)

	var identityLookup auth.IdentityLookup = userRepository
	var identityInvalidator auth.IdentityInvalidator
	var rdb *redis.Client

	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		identityCache := auth.NewIdentityCache(rdb, userRepository, cfg.IdentityCacheTTL)
		identityLookup = identityCache
		identityInvalidator = identityCache
	}

	// ── 6. Security & Domain Wiring ───────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, cfg.TokenTTL(), constants.AuthIssuer)
	must(log, err, "initialize token service")

	authService := auth.NewService(userRepository, sec.NewBcryptHasher(), tokenService, identityInvalidator)
	accountService := account.NewService(account.NewAccountRepository(pool), authService)
	taskService := task.NewService(task.NewTaskRepository(pool), userRepository)

	if cfg.BootstrapAdminEmail != "" {
		_, err := authService.EnsureAdmin(startupCtx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
		must(log, err, "provision bootstrap admin")
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	healthDependencies := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}
	if rdb != nil {
		healthDependencies.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(healthDependencies)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Task:      task.NewHandler(taskService),
	}

	server := api.NewServer(appCtx, cfg, log, auth.NewResolver(tokenService, identityLookup), metrics.New(), handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
