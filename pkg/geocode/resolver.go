package geocode

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/geo-locator/internal/metrics"
	"github.com/sells-group/geo-locator/internal/model"
	"github.com/sells-group/geo-locator/internal/resilience"
)

// Resolver turns a coordinate into a "City, ST" label. It never fails: any
// problem is reported as model.UnknownLocation. Implementations must be safe
// for concurrent use.
type Resolver interface {
	Resolve(ctx context.Context, lat, lng float64) string
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, lat, lng float64) string

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, lat, lng float64) string {
	return f(ctx, lat, lng)
}

// Resolve implements Resolver for the Google client.
func (c *googleClient) Resolve(ctx context.Context, lat, lng float64) string {
	start := time.Now()
	result, err := c.ReverseGeocode(ctx, lat, lng)
	metrics.GeocodeDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	outcome := outcomeFor(err)
	metrics.GeocodeRequests.WithLabelValues(outcome).Inc()

	if err != nil {
		log := zap.L().With(zap.Float64("lat", lat), zap.Float64("lng", lng))
		if outcome == metrics.OutcomeNoResult {
			log.Debug("geocode: no usable address", zap.Error(err))
		} else {
			log.Warn("geocode: reverse lookup failed",
				zap.String("class", string(resilience.Classify(err))),
				zap.Error(err),
			)
		}
		return model.UnknownLocation
	}
	return result.Label()
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNoResult), errors.Is(err, ErrNoAddress):
		return metrics.OutcomeNoResult
	case resilience.Classify(err) == resilience.ClassTransient,
		resilience.Classify(err) == resilience.ClassTimeout:
		return metrics.OutcomeTransient
	default:
		return metrics.OutcomeError
	}
}

// Guard wraps a Resolver so that panics and empty labels become
// model.UnknownLocation. The pipeline guards every resolver it is given.
func Guard(r Resolver) Resolver {
	if _, ok := r.(guarded); ok {
		return r
	}
	return guarded{inner: r}
}

type guarded struct {
	inner Resolver
}

func (g guarded) Resolve(ctx context.Context, lat, lng float64) (label string) {
	defer func() {
		if p := recover(); p != nil {
			zap.L().Error("geocode: resolver panicked",
				zap.Float64("lat", lat),
				zap.Float64("lng", lng),
				zap.Any("panic", p),
			)
			metrics.GeocodeRequests.WithLabelValues(metrics.OutcomeError).Inc()
			label = model.UnknownLocation
		}
	}()

	label = g.inner.Resolve(ctx, lat, lng)
	if label == "" {
		return model.UnknownLocation
	}
	return label
}
