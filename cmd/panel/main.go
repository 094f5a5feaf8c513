package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kjstillabower/weather-panel/internal/client"
	"github.com/kjstillabower/weather-panel/internal/config"
	"github.com/kjstillabower/weather-panel/internal/loop"
	"github.com/kjstillabower/weather-panel/internal/observability"
	"github.com/kjstillabower/weather-panel/internal/render"
	"github.com/kjstillabower/weather-panel/internal/term"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	weatherClient, err := client.NewOpenMeteoClient(cfg.WeatherAPIURL, cfg.FetchTimeout)
	if err != nil {
		logger.Fatal("weather client", zap.Error(err))
	}
	if cfg.MaxFetchesPerMinute > 0 {
		weatherClient.SetRateLimiter(rate.NewLimiter(rate.Limit(float64(cfg.MaxFetchesPerMinute)/60), cfg.FetchBurst))
		logger.Info("upstream rate cap enabled",
			zap.Int("max_fetches_per_minute", cfg.MaxFetchesPerMinute),
			zap.Int("burst", cfg.FetchBurst))
	}

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = observability.NewMetricsServer(cfg.MetricsAddr)
		go func() {
			logger.Info("metrics listener starting", zap.String("addr", cfg.MetricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics listener", zap.Error(err))
			}
		}()
	}

	screen := term.NewScreen(os.Stdout, cfg.NoColor)
	runner := loop.New(weatherClient, screen, cfg.Coordinate, cfg.RefreshInterval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen.PrintStatus(render.StyleNotice, fmt.Sprintf("Starting weather panel (refresh every %s)...", cfg.RefreshInterval))
	logger.Info("panel starting",
		zap.Float64("latitude", cfg.Coordinate.Latitude),
		zap.Float64("longitude", cfg.Coordinate.Longitude),
		zap.Duration("refresh_interval", cfg.RefreshInterval))

	if err := runner.Run(ctx); err != nil {
		logger.Error("display loop", zap.Error(err))
	}
	stop()

	screen.PrintStatus(render.StyleFarewell, "\nShutting down weather panel. Goodbye!")

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics listener shutdown", zap.Error(err))
		}
		cancel()
	}

	if err := observability.FlushTelemetry(context.Background(), logger); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
