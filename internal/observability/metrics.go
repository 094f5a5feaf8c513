package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// Refresh cycle rate by outcome. Watch for: error ratio creeping up
	// (upstream instability), counter stalling (loop wedged).
	PanelCyclesTotal *prometheus.CounterVec

	// Open-Meteo call rate by status. Watch for: error vs success ratio.
	WeatherAPICallsTotal *prometheus.CounterVec

	// Upstream latency per request. Watch for: p95 approaching the fetch
	// timeout (timeout risk on the next cycle).
	WeatherAPIDuration *prometheus.HistogramVec

	// Fetch failures by stable category (timeout, network, upstream_status, parsing).
	WeatherAPIErrorsTotal *prometheus.CounterVec

	// Last observed readings; only set when the upstream reports them.
	LastTemperatureCelsius prometheus.Gauge
	LastWindSpeedKmh       prometheus.Gauge

	// Unix timestamp of the last successful cycle. Watch for: staleness
	// beyond a few refresh intervals.
	LastSuccessfulCycleTimestamp prometheus.Gauge
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	PanelCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panelCyclesTotal",
			Help: "Total number of refresh cycles by outcome (success, error)",
		},
		[]string{"outcome"},
	)
	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiCallsTotal",
			Help: "Total number of Open-Meteo API calls",
		},
		[]string{"status"},
	)
	WeatherAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherApiDurationSeconds",
			Help:    "Open-Meteo API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	WeatherAPIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiErrorsTotal",
			Help: "Total number of failed weather fetches by error category",
		},
		[]string{"category"},
	)
	LastTemperatureCelsius = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lastTemperatureCelsius",
			Help: "Most recently observed temperature in °C",
		},
	)
	LastWindSpeedKmh = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lastWindSpeedKmh",
			Help: "Most recently observed wind speed in km/h",
		},
	)
	LastSuccessfulCycleTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lastSuccessfulCycleTimestampSeconds",
			Help: "Unix timestamp of the last cycle that rendered a panel",
		},
	)

	registry.MustRegister(
		PanelCyclesTotal,
		WeatherAPICallsTotal, WeatherAPIDuration, WeatherAPIErrorsTotal,
		LastTemperatureCelsius, LastWindSpeedKmh, LastSuccessfulCycleTimestamp,
	)
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
