package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"qrvalidator/internal/api"
	"qrvalidator/internal/api/handler/v1handler"
	"qrvalidator/internal/config"
	"qrvalidator/internal/qrcheck"
	"qrvalidator/pkg/logger"
	"qrvalidator/pkg/metrics"
	"qrvalidator/pkg/rasterizer/mupdf"
	"qrvalidator/pkg/validator/datavalid"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// setupMetrics exports otel instruments through the default Prometheus
// registry served at the metrics path.
func setupMetrics(ctx context.Context) (*metrics.Recorder, func(ctx context.Context)) {
	mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}
	rec, err := metrics.NewRecorder(mp)
	if err != nil {
		logger.Fatal(ctx, "could not create metrics recorder", zap.Error(err))
	}

	return rec, func(ctx context.Context) {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			rec, stopMetrics := setupMetrics(ctx)

			svc := qrcheck.New(qrcheck.Deps{
				Storage:    getStorage(ctx, cfg),
				Validator:  datavalid.New(&http.Client{Timeout: cfg.Datavalid.Timeout}, cfg.Datavalid.URL, cfg.Datavalid.Token),
				Rasterizer: mupdf.New(cfg.PDF.DPI),
				Metrics:    rec,
			}, qrcheck.DefaultOptions())

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps:    v1handler.Deps{QRCheck: svc},
				Metrics: rec,
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopMetrics(shutdownCtx)
		},
	}

	return cmd
}
