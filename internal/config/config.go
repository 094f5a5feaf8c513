package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kjstillabower/weather-panel/internal/models"
)

// Baseline defaults: Sintra, Portugal, refreshed every five minutes.
// The panel runs with no config file at all; the file and env vars
// only override these.
const (
	DefaultLatitude        = 38.8028687
	DefaultLongitude       = -9.3816589
	DefaultRefreshInterval = 300 * time.Second
	DefaultFetchTimeout    = 10 * time.Second
	DefaultWeatherAPIURL   = "https://api.open-meteo.com/v1/forecast"
)

// Config holds the immutable process configuration. It is built once
// at startup and passed into the display loop at construction.
type Config struct {
	Coordinate      models.Coordinate
	RefreshInterval time.Duration
	NoColor         bool

	WeatherAPIURL string
	FetchTimeout  time.Duration

	// MaxFetchesPerMinute caps upstream calls regardless of the refresh
	// interval; zero disables the cap. FetchBurst is the limiter burst.
	MaxFetchesPerMinute int
	FetchBurst          int

	// MetricsAddr enables the /metrics and /healthz listener when set
	// (e.g. ":9090"); empty keeps the process listener-free.
	MetricsAddr string
}

type fileConfig struct {
	Panel struct {
		Latitude        *float64 `yaml:"latitude"`
		Longitude       *float64 `yaml:"longitude"`
		RefreshInterval string   `yaml:"refresh_interval"`
		NoColor         *bool    `yaml:"no_color"`
	} `yaml:"panel"`

	WeatherAPI struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"weather_api"`

	Reliability struct {
		MaxFetchesPerMinute int `yaml:"max_fetches_per_minute"`
		FetchBurst          int `yaml:"fetch_burst"`
	} `yaml:"reliability"`

	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev)
// when present, then applies env overrides: PANEL_LATITUDE,
// PANEL_LONGITUDE, REFRESH_INTERVAL, WEATHER_API_URL, METRICS_ADDR,
// NO_COLOR. A missing config file is not an error; the compiled-in
// defaults apply.
func Load() (*Config, error) {
	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}

	var fc fileConfig
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg := &Config{
		Coordinate:      models.Coordinate{Latitude: DefaultLatitude, Longitude: DefaultLongitude},
		RefreshInterval: DefaultRefreshInterval,
		WeatherAPIURL:   DefaultWeatherAPIURL,
		FetchTimeout:    DefaultFetchTimeout,
	}

	if fc.Panel.Latitude != nil {
		cfg.Coordinate.Latitude = *fc.Panel.Latitude
	}
	if fc.Panel.Longitude != nil {
		cfg.Coordinate.Longitude = *fc.Panel.Longitude
	}
	cfg.RefreshInterval = parseDuration(fc.Panel.RefreshInterval, cfg.RefreshInterval)
	if fc.Panel.NoColor != nil {
		cfg.NoColor = *fc.Panel.NoColor
	}
	if fc.WeatherAPI.URL != "" {
		cfg.WeatherAPIURL = fc.WeatherAPI.URL
	}
	cfg.FetchTimeout = parseDuration(fc.WeatherAPI.Timeout, cfg.FetchTimeout)
	cfg.MaxFetchesPerMinute = fc.Reliability.MaxFetchesPerMinute
	cfg.FetchBurst = fc.Reliability.FetchBurst
	if cfg.MaxFetchesPerMinute > 0 && cfg.FetchBurst <= 0 {
		cfg.FetchBurst = 1
	}
	cfg.MetricsAddr = strings.TrimSpace(fc.Metrics.Addr)

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PANEL_LATITUDE"); v != "" {
		lat, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("PANEL_LATITUDE: %w", err)
		}
		cfg.Coordinate.Latitude = lat
	}
	if v := os.Getenv("PANEL_LONGITUDE"); v != "" {
		lon, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("PANEL_LONGITUDE: %w", err)
		}
		cfg.Coordinate.Longitude = lon
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("REFRESH_INTERVAL: %w", err)
		}
		cfg.RefreshInterval = d
	}
	if v := os.Getenv("WEATHER_API_URL"); v != "" {
		cfg.WeatherAPIURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = strings.TrimSpace(v)
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.NoColor = true
	}
	return nil
}

// parseDuration parses a duration string and returns defaultVal if the
// string is empty, unparsable, or not positive.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func validate(cfg *Config) error {
	if cfg.Coordinate.Latitude < -90 || cfg.Coordinate.Latitude > 90 {
		return fmt.Errorf("latitude must be in [-90, 90], got %v", cfg.Coordinate.Latitude)
	}
	if cfg.Coordinate.Longitude < -180 || cfg.Coordinate.Longitude > 180 {
		return fmt.Errorf("longitude must be in [-180, 180], got %v", cfg.Coordinate.Longitude)
	}
	if cfg.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", cfg.RefreshInterval)
	}
	if cfg.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", cfg.FetchTimeout)
	}
	if cfg.MaxFetchesPerMinute < 0 {
		return fmt.Errorf("max fetches per minute must not be negative, got %d", cfg.MaxFetchesPerMinute)
	}
	return nil
}
