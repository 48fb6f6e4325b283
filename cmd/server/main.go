// @title                       Business Management API
// @version                     1.0.0
// @description                 Tenders, budgets, finance accounts, transactions and the debt table behind bearer token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/tenderdesk/business-api/internal/api"
	"github.com/tenderdesk/business-api/internal/api/handler"
	"github.com/tenderdesk/business-api/internal/api/registry"
	"github.com/tenderdesk/business-api/internal/core/service"
	mongostore "github.com/tenderdesk/business-api/internal/infrastructure/db/mongo"
	redisstore "github.com/tenderdesk/business-api/internal/infrastructure/db/redis"
	"github.com/tenderdesk/business-api/internal/infrastructure/queue"
	"github.com/tenderdesk/business-api/internal/pkg/config"
	"github.com/tenderdesk/business-api/pkg/logger"
)

var resourceCollections = []string{
	"roles", "permissions", "tenders", "budgets",
	"finance_accounts", "transactions", "dolg_table",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	if err := run(ctx); err != nil {
		stop()
		exitLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		exitLog.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
	stop()
}

// run wires the service and blocks until ctx is cancelled or the server
// fails. Every resource it opens is released before it returns.
func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "business-api",
		Version: cfg.Version,
	})

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongostore.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := mongostore.EnsureResourceIndexes(ctx, db, resourceCollections...); err != nil {
		return err
	}

	// The dispatcher outlives ctx: it is stopped after the HTTP server has
	// drained, so audit events of in-flight requests are still written.
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongostore.NewAuditRepository(db), logger.Component("audit"))
	dispatcher.Start(context.WithoutCancel(ctx))

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisstore.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Lockout)
	authService := service.NewAuthService(users, tokens, throttle, logger.Component("auth"))

	e, report, err := api.NewRouter(api.Options{
		Version: cfg.Version,
		Table:   registry.DefaultTable(),
		Modules: api.NewModules(api.ModuleDeps{
			DB:     db,
			Auth:   authService,
			Audit:  dispatcher,
			Logger: logger.Component("resources"),
		}),
		Verifier: tokens,
		Checks: map[string]handler.CheckFunc{
			"mongo": mongostore.Ping(mongoClient),
			"redis": redisstore.Ping(rdb),
		},
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}
	log.Info().
		Int("mounted", len(report.Mounted)).
		Int("failed", len(report.Failed)).
		Msg("route table mounted")

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("server: %w", err)
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("audit queue not fully drained")
	}
	log.Info().Msg("server stopped")

	return runErr
}
