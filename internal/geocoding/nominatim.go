package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// HTTPClient interface for making HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NominatimConfig configures the Nominatim reverse geocoding client
type NominatimConfig struct {
	BaseURL    string
	UserAgent  string
	Attempts   uint
	Delay      time.Duration
	MaxDelay   time.Duration
	HTTPClient HTTPClient
}

// NominatimClient reverse geocodes coordinates against a Nominatim compatible API
type NominatimClient struct {
	baseURL    string
	userAgent  string
	attempts   uint
	delay      time.Duration
	maxDelay   time.Duration
	httpClient HTTPClient
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.code, e.body)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

type nominatimResponse struct {
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
	Error       string            `json:"error"`
}

var (
	cityKeys   = []string{"city", "town", "village", "hamlet", "municipality", "suburb", "county"}
	regionKeys = []string{"state", "region", "province", "state_district"}
)

func NewNominatimClient(cfg NominatimConfig) *NominatimClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "travel-report-go"
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}
	if cfg.Delay == 0 {
		cfg.Delay = 500 * time.Millisecond
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = 5 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &NominatimClient{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		attempts:   cfg.Attempts,
		delay:      cfg.Delay,
		maxDelay:   cfg.MaxDelay,
		httpClient: cfg.HTTPClient,
	}
}

// Reverse looks up the place for a coordinate, retrying rate limits and server errors
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")
	apiURL := c.baseURL + "/reverse?" + q.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			var err error
			body, err = c.fetch(ctx, apiURL)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(c.maxDelay),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("[Geocoder] retrying reverse lookup (attempt %d): %v", n+1, err)
		}),
		retry.RetryIf(func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.retryable()
			}
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode (%.6f, %.6f): %w", lat, lon, err)
	}

	var resp nominatimResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}
	if resp.Error != "" || resp.DisplayName == "" {
		return nil, ErrNoResult
	}

	return &Place{
		Address: resp.DisplayName,
		City:    stringPtr(firstOf(resp.Address, cityKeys)),
		Region:  stringPtr(firstOf(resp.Address, regionKeys)),
	}, nil
}

func (c *NominatimClient) fetch(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, body: string(body)}
	}
	return body, nil
}

func firstOf(fields map[string]string, keys []string) string {
	for _, k := range keys {
		if v := fields[k]; v != "" {
			return v
		}
	}
	return ""
}
