package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// chdirTemp moves the test into an empty temp dir so Load does not pick
// up a real config/ directory, and restores the old cwd afterwards.
func chdirTemp(t *testing.T) string {
	t.Helper()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	return dir
}

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "dev.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV_NAME", "PANEL_LATITUDE", "PANEL_LONGITUDE", "REFRESH_INTERVAL", "WEATHER_API_URL", "METRICS_ADDR", "NO_COLOR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	clearEnv(t)
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Coordinate.Latitude != DefaultLatitude {
		t.Errorf("Latitude = %v, want default %v", cfg.Coordinate.Latitude, DefaultLatitude)
	}
	if cfg.Coordinate.Longitude != DefaultLongitude {
		t.Errorf("Longitude = %v, want default %v", cfg.Coordinate.Longitude, DefaultLongitude)
	}
	if cfg.RefreshInterval != DefaultRefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", cfg.RefreshInterval, DefaultRefreshInterval)
	}
	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("FetchTimeout = %v, want %v", cfg.FetchTimeout, DefaultFetchTimeout)
	}
	if cfg.WeatherAPIURL != DefaultWeatherAPIURL {
		t.Errorf("WeatherAPIURL = %q, want %q", cfg.WeatherAPIURL, DefaultWeatherAPIURL)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want disabled by default", cfg.MetricsAddr)
	}
	if cfg.NoColor {
		t.Error("NoColor should default to false")
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)
	writeConfigFile(t, dir, `
panel:
  latitude: 47.6062
  longitude: -122.3321
  refresh_interval: "90s"
  no_color: true
weather_api:
  url: "https://forecast.example.test/v1/forecast"
  timeout: "3s"
reliability:
  max_fetches_per_minute: 6
metrics:
  addr: ":9090"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Coordinate.Latitude != 47.6062 || cfg.Coordinate.Longitude != -122.3321 {
		t.Errorf("Coordinate = %+v, want Seattle", cfg.Coordinate)
	}
	if cfg.RefreshInterval != 90*time.Second {
		t.Errorf("RefreshInterval = %v, want 90s", cfg.RefreshInterval)
	}
	if !cfg.NoColor {
		t.Error("NoColor = false, want true from file")
	}
	if cfg.WeatherAPIURL != "https://forecast.example.test/v1/forecast" {
		t.Errorf("WeatherAPIURL = %q", cfg.WeatherAPIURL)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if cfg.MaxFetchesPerMinute != 6 {
		t.Errorf("MaxFetchesPerMinute = %d, want 6", cfg.MaxFetchesPerMinute)
	}
	if cfg.FetchBurst != 1 {
		t.Errorf("FetchBurst = %d, want implicit 1 when rate cap set", cfg.FetchBurst)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want :9090", cfg.MetricsAddr)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)
	writeConfigFile(t, dir, `
panel:
  latitude: 10.0
  longitude: 20.0
  refresh_interval: "5m"
`)

	t.Setenv("PANEL_LATITUDE", "51.5074")
	t.Setenv("PANEL_LONGITUDE", "-0.1278")
	t.Setenv("REFRESH_INTERVAL", "30s")
	t.Setenv("METRICS_ADDR", ":9100")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Coordinate.Latitude != 51.5074 || cfg.Coordinate.Longitude != -0.1278 {
		t.Errorf("Coordinate = %+v, want env override", cfg.Coordinate)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want 30s from env", cfg.RefreshInterval)
	}
	if cfg.MetricsAddr != ":9100" {
		t.Errorf("MetricsAddr = %q, want :9100 from env", cfg.MetricsAddr)
	}
	if !cfg.NoColor {
		t.Error("NoColor should be set by NO_COLOR env")
	}
}

func TestLoad_RejectsInvalidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		lat  string
		lon  string
		want string
	}{
		{"latitude too high", "95", "0", "latitude"},
		{"latitude too low", "-91", "0", "latitude"},
		{"longitude too high", "0", "181", "longitude"},
		{"longitude too low", "0", "-200.5", "longitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			chdirTemp(t)
			t.Setenv("PANEL_LATITUDE", tt.lat)
			t.Setenv("PANEL_LONGITUDE", tt.lon)

			cfg, err := Load()
			if err == nil {
				t.Fatalf("Load() expected error, got cfg %+v", cfg)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoad_RejectsUnparsableEnv(t *testing.T) {
	clearEnv(t)
	chdirTemp(t)
	t.Setenv("REFRESH_INTERVAL", "five minutes")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for unparsable REFRESH_INTERVAL")
	}
}

func TestLoad_BadDurationInFileFallsBack(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)
	writeConfigFile(t, dir, `
panel:
  refresh_interval: "not-a-duration"
weather_api:
  timeout: "-5s"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RefreshInterval != DefaultRefreshInterval {
		t.Errorf("RefreshInterval = %v, want default for unparsable file value", cfg.RefreshInterval)
	}
	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("FetchTimeout = %v, want default for non-positive file value", cfg.FetchTimeout)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)
	writeConfigFile(t, dir, "panel: [not a map")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for malformed YAML")
	}
}
