// Package pipeline resolves generated sample points in rate-limited batches
// and assembles the ordered result set.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geo-locator/internal/content"
	"github.com/sells-group/geo-locator/internal/metrics"
	"github.com/sells-group/geo-locator/internal/model"
	"github.com/sells-group/geo-locator/pkg/geocode"
)

// Defaults sized for the Google Geocoding API.
const (
	DefaultBatchSize       = 5
	DefaultInterBatchDelay = 200 * time.Millisecond
	DefaultCallTimeout     = 10 * time.Second
)

// ErrCanceled is returned (wrapped together with the context error) when a
// run is canceled. No partial result set accompanies it.
var ErrCanceled = errors.New("pipeline: run canceled")

// ProgressFunc is called synchronously after each batch with the number of
// points resolved so far and the total.
type ProgressFunc func(resolved, total int)

// Options tunes batching and output.
type Options struct {
	// BatchSize bounds the number of concurrent geocode calls.
	BatchSize int
	// InterBatchDelay is the pause between batches. Zero disables it.
	InterBatchDelay time.Duration
	// CallTimeout bounds a single geocode call.
	CallTimeout time.Duration
	// Localize appends the resolved city label to keyword and business name.
	Localize bool
}

// DefaultOptions returns the batching defaults.
func DefaultOptions() Options {
	return Options{
		BatchSize:       DefaultBatchSize,
		InterBatchDelay: DefaultInterBatchDelay,
		CallTimeout:     DefaultCallTimeout,
	}
}

// Pipeline drives a Resolver over sample points batch by batch.
type Pipeline struct {
	resolver geocode.Resolver
	opts     Options
}

// New creates a Pipeline. The resolver is guarded so that a panicking or
// misbehaving implementation degrades to the sentinel label.
func New(resolver geocode.Resolver, opts Options) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.InterBatchDelay < 0 {
		opts.InterBatchDelay = 0
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	return &Pipeline{resolver: geocode.Guard(resolver), opts: opts}
}

// Options returns the effective options.
func (p *Pipeline) Options() Options { return p.opts }

// Run geocodes points in contiguous batches of at most BatchSize. Calls within
// a batch run concurrently and the next batch starts only after every call in
// the current one has returned and InterBatchDelay has elapsed. Individual
// geocode failures become model.UnknownLocation. On cancellation the partial
// rows are discarded and an error wrapping ErrCanceled and ctx.Err() is
// returned.
func (p *Pipeline) Run(
	ctx context.Context,
	points []model.SamplePoint,
	assigner *content.Assigner,
	businessURL string,
	progress ProgressFunc,
) (*model.ResultSet, error) {
	if assigner == nil {
		metrics.PipelineRuns.WithLabelValues(metrics.RunInvalid).Inc()
		return nil, model.NewConfigError("content", "assigner is required")
	}

	businessURL = strings.TrimSpace(businessURL)
	if businessURL == "" {
		businessURL = model.NotApplicable
	}

	runID := uuid.NewString()
	total := len(points)
	log := zap.L().With(
		zap.String("run_id", runID),
		zap.Int("points", total),
		zap.Int("batch_size", p.opts.BatchSize),
	)
	log.Info("pipeline: starting run")

	rows := make([]model.ResolvedLocation, total)
	batches := 0
	for start := 0; start < total; start += p.opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, p.canceled(log, start, total, err)
		}

		end := min(start+p.opts.BatchSize, total)

		var eg errgroup.Group
		for i := start; i < end; i++ {
			eg.Go(func() error {
				rows[i] = p.resolvePoint(ctx, points[i], assigner, businessURL)
				return nil
			})
		}
		_ = eg.Wait()

		if err := ctx.Err(); err != nil {
			return nil, p.canceled(log, start, total, err)
		}

		batches++
		metrics.PipelineBatches.Inc()
		metrics.PipelinePoints.Add(float64(end - start))
		log.Debug("pipeline: batch complete",
			zap.Int("batch", batches),
			zap.Int("resolved", end),
		)
		if progress != nil {
			progress(end, total)
		}

		if end < total && p.opts.InterBatchDelay > 0 {
			if err := sleep(ctx, p.opts.InterBatchDelay); err != nil {
				return nil, p.canceled(log, end, total, err)
			}
		}
	}

	slices.SortStableFunc(rows, func(a, b model.ResolvedLocation) int {
		return a.SequenceIndex - b.SequenceIndex
	})

	rs := model.NewResultSet(runID, rows, time.Now())
	summary := rs.Summary()
	metrics.PipelineRuns.WithLabelValues(metrics.RunComplete).Inc()
	log.Info("pipeline: run complete",
		zap.Int("batches", batches),
		zap.Int("distinct_cities", summary.DistinctCities),
		zap.Int("unresolved", summary.Unresolved),
	)
	return rs, nil
}

// resolvePoint geocodes one point under its own timeout and joins the
// rotated content.
func (p *Pipeline) resolvePoint(
	ctx context.Context,
	pt model.SamplePoint,
	assigner *content.Assigner,
	businessURL string,
) model.ResolvedLocation {
	callCtx, cancel := context.WithTimeout(ctx, p.opts.CallTimeout)
	defer cancel()

	cityState := p.resolver.Resolve(callCtx, pt.Latitude, pt.Longitude)
	v := assigner.Assign(pt.SequenceIndex, pt.RingIndex)

	keyword, business := v.Keyword, v.BusinessName
	if p.opts.Localize {
		keyword = keyword + " " + cityState
		business = business + " " + cityState
	}

	return model.ResolvedLocation{
		SamplePoint:  pt,
		CityState:    cityState,
		Keyword:      keyword,
		BusinessName: business,
		Description:  v.Description,
		Color:        v.Color,
		BusinessURL:  businessURL,
	}
}

func (p *Pipeline) canceled(log *zap.Logger, resolved, total int, cause error) error {
	metrics.PipelineRuns.WithLabelValues(metrics.RunCanceled).Inc()
	log.Warn("pipeline: run canceled, discarding partial results",
		zap.Int("resolved", resolved),
		zap.Int("total", total),
		zap.Error(cause),
	)
	return fmt.Errorf("%w after %d of %d points: %w", ErrCanceled, resolved, total, cause)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
