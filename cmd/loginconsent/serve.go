package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/loginconsent/internal/config"
	"github.com/dropDatabas3/loginconsent/internal/http/server"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
	"github.com/dropDatabas3/loginconsent/internal/observability/tracing"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// .env es opcional: en contenedores todo viene del entorno
			_ = godotenv.Load()

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.App.Version == "" {
				cfg.App.Version = version
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     cfg.App.Version,
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     cfg.App.Version,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown", logger.Err(err))
		}
	}()

	handler, cleanup, err := server.BuildHandler(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup", logger.Err(err))
		}
	}()

	srv := server.New(cfg, handler)
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("env", cfg.App.Env),
			logger.String("hydra_admin_url", cfg.Hydra.AdminURL),
			logger.String("kratos_public_url", cfg.Kratos.PublicURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := server.Shutdown(context.Background(), cfg, srv); err != nil {
		return err
	}
	return <-errCh
}
