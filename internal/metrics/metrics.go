// Package metrics exposes prometheus collectors for geocoding and pipeline runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Geocode outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeNoResult  = "no_result"
	OutcomeTransient = "transient"
	OutcomeError     = "error"
)

// Pipeline run status labels.
const (
	RunComplete = "complete"
	RunCanceled = "canceled"
	RunInvalid  = "invalid"
)

var (
	GeocodeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "locator_geocode_requests_total",
		Help: "Reverse geocode calls by outcome",
	}, []string{"outcome"})
	GeocodeDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "locator_geocode_duration_ms",
		Help:    "Reverse geocode call duration in milliseconds",
		Buckets: []float64{10, 25, 50, 100, 200, 500, 1000, 2500, 5000, 10000},
	})
	PipelineRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "locator_pipeline_runs_total",
		Help: "Pipeline runs by final status",
	}, []string{"status"})
	PipelineBatches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_pipeline_batches_total",
		Help: "Geocode batches completed",
	})
	PipelinePoints = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_pipeline_points_total",
		Help: "Sample points resolved, including sentinel fallbacks",
	})
)

func init() {
	prometheus.MustRegister(GeocodeRequests)
	prometheus.MustRegister(GeocodeDurationMs)
	prometheus.MustRegister(PipelineRuns)
	prometheus.MustRegister(PipelineBatches)
	prometheus.MustRegister(PipelinePoints)
}

// Handler serves the default registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
