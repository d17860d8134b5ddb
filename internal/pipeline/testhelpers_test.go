package pipeline

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-locator/internal/content"
	"github.com/sells-group/geo-locator/internal/model"
	"github.com/sells-group/geo-locator/internal/rings"
	"github.com/sells-group/geo-locator/pkg/geocode"
)

var elgin = model.Coordinate{Latitude: 42.1103, Longitude: -88.2073}

// fastOptions disables the inter-batch delay so tests run quickly.
func fastOptions(batchSize int) Options {
	return Options{BatchSize: batchSize, CallTimeout: DefaultCallTimeout}
}

func exampleLists() content.Lists {
	return content.Lists{
		Keywords:      []string{"A", "B"},
		BusinessNames: []string{"X"},
		Descriptions:  []string{"D"},
	}
}

func testAssigner(t *testing.T) *content.Assigner {
	t.Helper()
	a, err := content.NewAssigner(exampleLists(), content.DefaultPalette, "")
	require.NoError(t, err)
	return a
}

func testPoints(t *testing.T, layout rings.Layout) []model.SamplePoint {
	t.Helper()
	points, err := rings.Generate(elgin, layout)
	require.NoError(t, err)
	return points
}

// seqLabel labels each coordinate deterministically so tests can check that
// rows kept their own geocode result.
func seqLabel(lat, lng float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lng)
}

func labelResolver() geocode.Resolver {
	return geocode.ResolverFunc(func(_ context.Context, lat, lng float64) string {
		return seqLabel(lat, lng)
	})
}

// progressRecorder collects progress callbacks.
type progressRecorder struct {
	mu    sync.Mutex
	calls [][2]int
}

func (r *progressRecorder) record(resolved, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]int{resolved, total})
}
