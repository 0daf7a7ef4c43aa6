// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Lumen content API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the content storage (PostgreSQL + migrations, or YAML fixtures).
//  4. Wrap the storage in the Redis read-through cache when configured.
//  5. Load the token signing keys.
//  6. Wire HTTP handlers.
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
	"time"

	"github.com/taibuivan/lumen/internal/api"
	"github.com/taibuivan/lumen/internal/auth"
	"github.com/taibuivan/lumen/internal/content"
	"github.com/taibuivan/lumen/internal/platform/access"
	"github.com/taibuivan/lumen/internal/platform/config"
	"github.com/taibuivan/lumen/internal/platform/constants"
	"github.com/taibuivan/lumen/internal/platform/migration"
	pgstore "github.com/taibuivan/lumen/internal/platform/postgres"
	redisstore "github.com/taibuivan/lumen/internal/platform/redis"
	"github.com/taibuivan/lumen/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("[Lumen] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
		slog.Bool("cache", cfg.CacheEnabled()),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives for the whole process; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Content Storage ────────────────────────────────────────────────
	var (
		store          content.Store
		userRepository auth.UserRepository
		health         api.HealthDependencies
	)

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		store = content.NewPostgresStore(pool)
		userRepository = auth.NewUserRepository(pool)
		health.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}

	case config.DriverMemory:
		memory, err := content.LoadFixtures(cfg.FixturesPath)
		must(log, err, "load fixtures")
		log.Info("fixtures_loaded", slog.String("path", cfg.FixturesPath))

		store = memory
		userRepository = auth.NewMemoryUserRepository(memory)
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	if cfg.CacheEnabled() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		store = content.NewCachedStore(store, rdb, cfg.CacheTTL, log)
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 5. Tokens ─────────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	descriptors := content.Descriptors()
	services := make([]*content.Service, 0, len(descriptors))
	for _, descriptor := range descriptors {
		services = append(services, content.NewService(descriptor, store, log))
	}

	liveness, readiness := api.NewHealthHandlers(health, log)
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(userRepository, tokens, cfg.TokenTTL, log)),
		Content:   content.NewHandler(access.NewGate(tokens, cfg.AdminRequireRole), services...),
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	rootCancel()

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON process logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "lumen"))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Only for startup wiring. After startup, errors are returned and handled.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
