package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-panel/internal/client"
	"github.com/kjstillabower/weather-panel/internal/models"
	"github.com/kjstillabower/weather-panel/internal/observability"
	"github.com/kjstillabower/weather-panel/internal/render"
	"github.com/kjstillabower/weather-panel/internal/term"
)

// Runner drives the fetch-format-display cycle for one fixed
// coordinate until its context is cancelled. A failed fetch prints a
// diagnostic and waits for the next cycle; nothing is retried inside a
// cycle and nothing survives a cycle except the configuration.
type Runner struct {
	client   client.WeatherClient
	screen   *term.Screen
	coord    models.Coordinate
	interval time.Duration
	logger   *zap.Logger
}

// New creates a Runner. interval is the suspension between cycles.
func New(weatherClient client.WeatherClient, screen *term.Screen, coord models.Coordinate, interval time.Duration, logger *zap.Logger) *Runner {
	return &Runner{
		client:   weatherClient,
		screen:   screen,
		coord:    coord,
		interval: interval,
		logger:   logger,
	}
}

// Run executes cycles until ctx is cancelled, then returns nil.
// Cancellation is observed at cycle boundaries, so shutdown latency is
// bounded by the fetch timeout of an in-flight request, never by the
// refresh interval.
func (r *Runner) Run(ctx context.Context) error {
	for {
		r.runCycle(ctx)

		if ctx.Err() != nil {
			return nil
		}
		timer := time.NewTimer(r.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func (r *Runner) runCycle(ctx context.Context) {
	corrID := uuid.New().String()
	cycleCtx := context.WithValue(ctx, "correlation_id", corrID)
	start := time.Now()

	snap, err := r.client.CurrentWeather(cycleCtx, r.coord)
	if err != nil {
		observability.PanelCyclesTotal.WithLabelValues("error").Inc()
		observability.WeatherAPIErrorsTotal.WithLabelValues(string(client.CategorizeError(err))).Inc()
		r.logger.Warn("fetch failed, skipping render for this cycle",
			zap.String("correlation_id", corrID),
			zap.Error(err))
		if ctx.Err() == nil {
			r.screen.PrintStatus(render.StyleError, fmt.Sprintf("Error fetching weather data: %v", err))
		}
		return
	}

	panel := render.Format(r.coord, snap)
	r.screen.Clear()
	r.screen.PrintPanel(panel)
	r.screen.PrintStatus(render.StyleNotice, "\nUpdated just now. Press Ctrl+C to exit.")

	observability.PanelCyclesTotal.WithLabelValues("success").Inc()
	observability.LastSuccessfulCycleTimestamp.Set(float64(snap.FetchedAt.Unix()))
	if snap.Temperature != nil {
		observability.LastTemperatureCelsius.Set(*snap.Temperature)
	}
	if snap.WindSpeed != nil {
		observability.LastWindSpeedKmh.Set(*snap.WindSpeed)
	}

	r.logger.Info("panel refreshed",
		zap.String("correlation_id", corrID),
		zap.Duration("cycle_duration", time.Since(start)))
}
