package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/kjstillabower/weather-panel/internal/models"
	"github.com/kjstillabower/weather-panel/internal/observability"
)

// WeatherClient fetches current conditions for a coordinate.
type WeatherClient interface {
	CurrentWeather(ctx context.Context, coord models.Coordinate) (models.Snapshot, error)
}

// ErrFetchFailed is the single failure condition the display loop has
// to handle: every transport error, timeout, bad status, and unparsable
// payload wraps it. Match with errors.Is.
var ErrFetchFailed = errors.New("weather fetch failed")

// OpenMeteoClient fetches current conditions from the Open-Meteo
// forecast API. No API key is required.
type OpenMeteoClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	limiter *rate.Limiter
}

// NewOpenMeteoClient creates a client for the given forecast endpoint.
// timeout bounds each request.
func NewOpenMeteoClient(baseURL string, timeout time.Duration) (*OpenMeteoClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("forecast API URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid forecast API URL: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("fetch timeout must be positive")
	}

	return &OpenMeteoClient{
		baseURL: baseURL,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// SetRateLimiter bounds upstream call rate independently of the
// refresh interval, so a misconfigured short interval cannot hammer
// the public API. Nil disables the limiter.
func (c *OpenMeteoClient) SetRateLimiter(l *rate.Limiter) {
	c.limiter = l
}

// Pointer fields so an omitted sub-field is distinguishable from zero.
type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature   *float64 `json:"temperature"`
		WindSpeed     *float64 `json:"windspeed"`
		WindDirection *float64 `json:"winddirection"`
		Time          *string  `json:"time"`
	} `json:"current_weather"`
}

// CurrentWeather performs one GET against the forecast endpoint and
// parses the current_weather block. All sub-fields are optional; a
// missing one comes back nil in the snapshot. Any failure wraps
// ErrFetchFailed. There is no retry: the caller's next cycle is the
// retry.
func (c *OpenMeteoClient) CurrentWeather(ctx context.Context, coord models.Coordinate) (models.Snapshot, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return models.Snapshot{}, fmt.Errorf("%w: rate limit wait: %v", ErrFetchFailed, err)
		}
	}

	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, coord)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		return models.Snapshot{}, fmt.Errorf("%w: build request: %v", ErrFetchFailed, err)
	}

	if corrID := extractCorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		observability.WeatherAPIDuration.WithLabelValues("error").Observe(duration)

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return models.Snapshot{}, fmt.Errorf("%w: request timeout: %v", ErrFetchFailed, err)
		}
		return models.Snapshot{}, fmt.Errorf("%w: http request failed: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(status).Observe(duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Snapshot{}, fmt.Errorf("%w: HTTP %d from forecast API", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: read response body: %v", ErrFetchFailed, err)
	}

	var apiResp openMeteoResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: parse response: %v", ErrFetchFailed, err)
	}

	return models.Snapshot{
		ObservedAt:  apiResp.CurrentWeather.Time,
		Temperature: apiResp.CurrentWeather.Temperature,
		WindSpeed:   apiResp.CurrentWeather.WindSpeed,
		WindBearing: apiResp.CurrentWeather.WindDirection,
		FetchedAt:   time.Now(),
	}, nil
}

func (c *OpenMeteoClient) buildRequest(ctx context.Context, coord models.Coordinate) (*http.Request, error) {
	baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("current_weather", "true")
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

func extractCorrelationID(ctx context.Context) string {
	if corrIDVal := ctx.Value("correlation_id"); corrIDVal != nil {
		if corrID, ok := corrIDVal.(string); ok {
			return corrID
		}
	}
	return ""
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
