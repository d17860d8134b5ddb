package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/geo-locator/internal/content"
	"github.com/sells-group/geo-locator/internal/metrics"
	"github.com/sells-group/geo-locator/internal/model"
	"github.com/sells-group/geo-locator/internal/rings"
)

// Request is everything a single locate run needs.
type Request struct {
	Center      model.Coordinate `json:"center"`
	BusinessURL string           `json:"business_url"`
	Content     content.Lists    `json:"content"`
	Layout      rings.Layout     `json:"layout"`
	Palette     []string         `json:"palette,omitempty"`
	CenterColor string           `json:"center_color,omitempty"`
}

// Locate validates the request, generates the ring points and runs them.
// Validation failures are returned as *model.ConfigError before any geocode
// call is made.
func (p *Pipeline) Locate(ctx context.Context, req Request, progress ProgressFunc) (*model.ResultSet, error) {
	assigner, points, err := Prepare(req)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues(metrics.RunInvalid).Inc()
		zap.L().Warn("pipeline: rejected request", zap.Error(err))
		return nil, err
	}
	return p.Run(ctx, points, assigner, req.BusinessURL, progress)
}

// Prepare runs the pre-flight checks in order (center, content lists,
// layout) and returns the assigner and generated points.
func Prepare(req Request) (*content.Assigner, []model.SamplePoint, error) {
	if err := rings.ValidateCenter(req.Center); err != nil {
		return nil, nil, err
	}

	palette := req.Palette
	if len(palette) == 0 {
		palette = content.DefaultPalette
	}
	assigner, err := content.NewAssigner(req.Content, palette, req.CenterColor)
	if err != nil {
		return nil, nil, err
	}

	points, err := rings.Generate(req.Center, req.Layout)
	if err != nil {
		return nil, nil, err
	}
	return assigner, points, nil
}
