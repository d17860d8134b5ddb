// Package geocode resolves coordinates to "City, ST" labels via the Google
// Geocoding API (reverse lookup).
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Client performs reverse geocoding. Implementations are safe for
// concurrent use.
type Client interface {
	Resolver

	// ReverseGeocode looks up the address components at a coordinate.
	ReverseGeocode(ctx context.Context, lat, lng float64) (*ReverseResult, error)
}

// ReverseResult holds the parts of a reverse geocode response the locator uses.
type ReverseResult struct {
	City             string `json:"city"`
	State            string `json:"state"`
	FormattedAddress string `json:"formatted_address"`
}

// Label returns the "City, ST" form used in output rows.
func (r *ReverseResult) Label() string {
	return r.City + ", " + r.State
}

// Option configures the client.
type Option func(*googleClient)

// WithBaseURL overrides the Geocoding API endpoint. Empty keeps the default.
func WithBaseURL(url string) Option {
	return func(c *googleClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *googleClient) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit shared by all callers of
// the client.
func WithRateLimit(rps float64) Option {
	return func(c *googleClient) {
		if rps <= 0 {
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *googleClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

type googleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Google reverse geocoding Client. The API key must be
// non-empty; callers validate it before constructing the client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &googleClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(50, 50), // Google default: 50 req/s
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
