package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sells-group/geo-locator/internal/metrics"
	"github.com/sells-group/geo-locator/internal/model"
	"github.com/sells-group/geo-locator/pkg/geocode/mocks"
)

func counter(outcome string) float64 {
	return testutil.ToFloat64(metrics.GeocodeRequests.WithLabelValues(outcome))
}

func TestResolve_Success(t *testing.T) {
	srv := httptest.NewServer(serveJSON(elginResponse()))
	defer srv.Close()

	before := counter(metrics.OutcomeOK)
	label := newTestClient(t, srv).Resolve(context.Background(), 42.11, -88.21)

	assert.Equal(t, "Elgin, IL", label)
	assert.InDelta(t, before+1, counter(metrics.OutcomeOK), 0.0001)
}

func TestResolve_FailuresBecomeSentinel(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		outcome string
	}{
		{"zero results", serveJSON(googleGeocodeResponse{Status: "ZERO_RESULTS"}), metrics.OutcomeNoResult},
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }, metrics.OutcomeTransient},
		{"denied", serveJSON(googleGeocodeResponse{Status: "REQUEST_DENIED"}), metrics.OutcomeError},
		{"garbage", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("<html>")) }, metrics.OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			before := counter(tt.outcome)
			label := newTestClient(t, srv).Resolve(context.Background(), 1, 2)

			assert.Equal(t, model.UnknownLocation, label)
			assert.InDelta(t, before+1, counter(tt.outcome), 0.0001)
		})
	}
}

func TestResolve_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(serveJSON(elginResponse()))
	srv.Close() // connection refused from here on

	c := NewClient("test-key", WithBaseURL(srv.URL)).(*googleClient)
	c.limiter = newTestLimiter()

	assert.Equal(t, model.UnknownLocation, c.Resolve(context.Background(), 1, 2))
}

func TestResolverFunc(t *testing.T) {
	t.Parallel()

	var r Resolver = ResolverFunc(func(_ context.Context, lat, lng float64) string {
		if lat > 0 {
			return "North, XX"
		}
		return "South, XX"
	})
	assert.Equal(t, "North, XX", r.Resolve(context.Background(), 1, 0))
	assert.Equal(t, "South, XX", r.Resolve(context.Background(), -1, 0))
}

func TestGuard_RecoversPanic(t *testing.T) {
	t.Parallel()

	r := Guard(ResolverFunc(func(context.Context, float64, float64) string {
		panic("provider exploded")
	}))

	assert.NotPanics(t, func() {
		assert.Equal(t, model.UnknownLocation, r.Resolve(context.Background(), 1, 1))
	})
}

func TestGuard_EmptyLabel(t *testing.T) {
	t.Parallel()

	r := Guard(ResolverFunc(func(context.Context, float64, float64) string { return "" }))
	assert.Equal(t, model.UnknownLocation, r.Resolve(context.Background(), 1, 1))
}

func TestGuard_PassThroughAndIdempotent(t *testing.T) {
	t.Parallel()

	m := mocks.NewMockResolver(t)
	m.On("Resolve", mock.Anything, 42.0, -88.0).Return("Elgin, IL").Once()

	g := Guard(m)
	assert.Equal(t, g, Guard(g))
	assert.Equal(t, "Elgin, IL", g.Resolve(context.Background(), 42.0, -88.0))
}
