package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/config"
	"github.com/justsurfingit/engineer-marketplace/internal/handlers"
	"github.com/justsurfingit/engineer-marketplace/internal/pending"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDatabase(db, logger)

	if cfg.SeedOnStart {
		if err := seedDatabase(cmd.Context(), db, logger); err != nil {
			return err
		}
	}

	var backend session.Backend
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		backend = session.NewMemoryBackend()
	default:
		backend = session.NewGormBackend(db)
	}
	sessions := session.NewStore(backend)

	// Initialize Core Services (Dependencies)
	runner := pending.NewRunner(cfg.SimulatedLatency, pending.RealClock)
	jobService := services.NewJobService(db)
	deps := handlers.Deps{
		Sessions:       sessions,
		Auth:           services.NewAuthService(db, sessions, logger),
		Jobs:           jobService,
		Apps:           services.NewApplicationService(db, jobService, runner, logger),
		Matcher:        services.NewMatcherService(db),
		Ratings:        services.NewRatingService(db),
		Profiles:       services.NewProfileService(db),
		Wizard:         services.NewWizardService(db, runner, logger),
		LLM:            services.NewLLMService(nil, runner, logger),
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("session_backend", cfg.SessionBackend),
			zap.Duration("simulated_latency", cfg.SimulatedLatency))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("server shutting down")
		return errors.Wrap(srv.Shutdown(shutdownCtx), "graceful shutdown failed")
	})
	return g.Wait()
}
