package geocode

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"
)

// newTestLimiter creates a rate limiter that effectively does not limit for tests.
func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

// newTestClient returns a googleClient pointed at srv with an unlimited limiter.
func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *googleClient {
	t.Helper()
	opts = append([]Option{WithBaseURL(srv.URL)}, opts...)
	c := NewClient("test-key", opts...).(*googleClient)
	c.limiter = newTestLimiter()
	return c
}

// serveJSON returns a handler that writes v as the JSON response body.
func serveJSON(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

// elginResponse is a trimmed Google response for a point in Elgin, IL.
func elginResponse() googleGeocodeResponse {
	return googleGeocodeResponse{
		Status: "OK",
		Results: []googleResult{{
			FormattedAddress: "100 Symphony Way, Elgin, IL 60120, USA",
			AddressComponents: []addressComponent{
				{LongName: "100", ShortName: "100", Types: []string{"street_number"}},
				{LongName: "Elgin", ShortName: "Elgin", Types: []string{"locality", "political"}},
				{LongName: "Kane County", ShortName: "Kane County", Types: []string{"administrative_area_level_2", "political"}},
				{LongName: "Illinois", ShortName: "IL", Types: []string{"administrative_area_level_1", "political"}},
				{LongName: "United States", ShortName: "US", Types: []string{"country", "political"}},
			},
		}},
	}
}

// newRewriteClient creates an HTTP client that rewrites requests to a test server URL.
// All requests matching the target prefix are redirected to the test server.
func newRewriteClient(testServerURL, targetPrefix string) *http.Client {
	return &http.Client{
		Transport: &rewriteTransport{
			base:         http.DefaultTransport,
			testServer:   testServerURL,
			targetPrefix: targetPrefix,
		},
	}
}

type rewriteTransport struct {
	base         http.RoundTripper
	testServer   string
	targetPrefix string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	origURL := req.URL.String()
	if strings.HasPrefix(origURL, t.targetPrefix) {
		suffix := origURL[len(t.targetPrefix):]
		newURL := t.testServer + suffix
		newReq := req.Clone(req.Context())
		parsed, err := req.URL.Parse(newURL)
		if err != nil {
			return nil, err
		}
		newReq.URL = parsed
		newReq.Host = parsed.Host
		return t.base.RoundTrip(newReq)
	}
	return t.base.RoundTrip(req)
}
