// Command authd runs the authentication service: account registration,
// login and token-gated profile access over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"github.com/kbukum/authd/internal/auth"
	"github.com/kbukum/authd/internal/config"
	"github.com/kbukum/authd/internal/database"
	"github.com/kbukum/authd/internal/logger"
	"github.com/kbukum/authd/internal/observability"
	"github.com/kbukum/authd/internal/password"
	"github.com/kbukum/authd/internal/server"
	"github.com/kbukum/authd/internal/server/endpoint"
	"github.com/kbukum/authd/internal/token"
	"github.com/kbukum/authd/internal/user"
)

const (
	serviceName    = "authd"
	serviceVersion = "0.1.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetGlobalLogger().Fatal("Failed to load config", logger.ErrorFields("config.load", err))
	}

	log := logger.New(&cfg.Log, serviceName)
	logger.SetGlobalLogger(log)

	// Startup invariant: a missing or malformed signing secret must stop
	// the process here, never surface as a per-request error.
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", logger.ErrorFields("config.validate", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Service failed", logger.ErrorFields("run", err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	tp, err := observability.InitTracer(ctx, cfg.Tracing, serviceName, serviceVersion)
	if err != nil {
		return err
	}
	if tp != nil {
		defer func() {
			_ = tp.Shutdown(context.Background())
		}()
	}

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close(db)
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	tokens, err := token.NewService(cfg.JWT)
	if err != nil {
		return err
	}

	hasher := password.NewHasher(
		password.WithTime(cfg.Hasher.Time),
		password.WithMemory(cfg.Hasher.Memory),
		password.WithThreads(cfg.Hasher.Threads),
	)

	store := user.NewGormStore(db)

	service, err := auth.NewService(store, hasher, tokens, log)
	if err != nil {
		return err
	}
	handler := auth.NewHandler(service, tokens)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	if cfg.Tracing.Enabled {
		srv.GinEngine().Use(observability.Tracing(serviceName))
	}

	srv.GinEngine().GET("/health", endpoint.Health(serviceName, serviceVersion, pingDB(db)))
	handler.RegisterRoutes(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	return srv.Stop(context.Background())
}

// pingDB adapts the GORM connection into a health checker.
func pingDB(db *gorm.DB) endpoint.Checker {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
