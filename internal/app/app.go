package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/vocadrill/backend/internal/adapter/postgres"
	"github.com/vocadrill/backend/internal/adapter/postgres/leitnerentry"
	"github.com/vocadrill/backend/internal/adapter/postgres/reviewlog"
	"github.com/vocadrill/backend/internal/adapter/postgres/srsentry"
	"github.com/vocadrill/backend/internal/adapter/postgres/srsweights"
	"github.com/vocadrill/backend/internal/auth"
	"github.com/vocadrill/backend/internal/config"
	"github.com/vocadrill/backend/internal/service/study"
	"github.com/vocadrill/backend/internal/service/study/leitner"
	"github.com/vocadrill/backend/internal/transport/middleware"
	"github.com/vocadrill/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the study service behind the REST router, and serves
// until the context is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	studySvc, err := study.NewService(
		logger,
		srsentry.New(pool),
		leitnerentry.New(pool),
		reviewlog.New(pool),
		srsweights.New(pool),
		txManager,
		studyConfig(cfg),
	)
	if err != nil {
		return fmt.Errorf("create study service: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	router := rest.NewRouter(
		rest.NewStudyHandler(studySvc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
		rest.RouterConfig{
			Logger: logger,
			CORS:   cfg.CORS,
			Auth:   middleware.Auth(jwtManager),
		},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// studyConfig maps the loaded configuration onto the study service knobs,
// falling back to the built-in session defaults when a map is absent.
func studyConfig(cfg *config.Config) study.Config {
	session := leitner.DefaultSessionConfig()
	if len(cfg.Leitner.Weights) > 0 {
		session.Weights = cfg.Leitner.Weights
	}
	if len(cfg.Leitner.Capacities) > 0 {
		session.Capacities = cfg.Leitner.Capacities
	}
	session.PreferDue = cfg.Leitner.PreferDue

	return study.Config{
		DesiredRetention: cfg.SRS.DesiredRetention,
		MaxIntervalDays:  cfg.SRS.MaxIntervalDays,
		Session:          session,
	}
}
