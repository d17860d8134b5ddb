package main

import (
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sells-group/geo-locator/internal/config"
	"github.com/sells-group/geo-locator/internal/content"
	"github.com/sells-group/geo-locator/internal/export"
	"github.com/sells-group/geo-locator/internal/model"
)

var (
	locateLat           float64
	locateLon           float64
	locateURL           string
	locateKeywords      string
	locateNames         string
	locateDescriptions  []string
	locateRings         int
	locatePointsPerRing int
	locateRadiusStep    float64
	locateBatchSize     int
	locateDelayMs       int
	locateFormat        string
	locateView          string
	locateOut           string
	locateBothViews     bool
	locateNoLocalize    bool
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Generate and export locations around a center point",
	Example: `  geo-locator locate --lat 42.1103 --lon -88.2073 --url https://example.com
  geo-locator locate --lat 42.1103 --lon -88.2073 --rings 1 --points-per-ring 4 --keywords "A,B" --format xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		applyLocateFlags(cmd.Flags(), cfg)

		format, err := export.ParseFormat(cfg.Export.Format)
		if err != nil {
			return err
		}
		views, err := exportViews(cfg.Export.View, locateBothViews)
		if err != nil {
			return err
		}

		p, err := initPipeline(cfg, config.ModeLocate)
		if err != nil {
			return err
		}

		req := cfg.Request(model.Coordinate{Latitude: locateLat, Longitude: locateLon})
		stderr := cmd.ErrOrStderr()
		rs, err := p.Locate(ctx, req, func(resolved, total int) {
			fmt.Fprintf(stderr, "\rresolved %d/%d", resolved, total) //nolint:errcheck
			if resolved == total {
				fmt.Fprintln(stderr) //nolint:errcheck
			}
		})
		if err != nil {
			return eris.Wrap(err, "locate")
		}

		for _, view := range views {
			path := outputPath(locateOut, cfg.Export.Dir, view, format, len(views) > 1)
			if err := export.ExportFile(path, rs, format, view); err != nil {
				return err
			}
			zap.L().Info("locate: wrote export",
				zap.String("path", path),
				zap.String("view", string(view)),
				zap.Int("rows", rs.Len()),
			)
			fmt.Fprintln(cmd.OutOrStdout(), path) //nolint:errcheck
		}

		printSummary(cmd.OutOrStdout(), rs)
		return nil
	},
}

// applyLocateFlags overlays explicitly set flags onto the loaded config.
func applyLocateFlags(fs *pflag.FlagSet, c *config.Config) {
	if fs.Changed("url") {
		c.Content.BusinessURL = locateURL
	}
	if fs.Changed("keywords") {
		c.Content.Keywords = content.ParseList(locateKeywords)
	}
	if fs.Changed("business-names") {
		c.Content.BusinessNames = content.ParseList(locateNames)
	}
	if fs.Changed("descriptions") {
		c.Content.Descriptions = locateDescriptions
	}
	if fs.Changed("rings") {
		c.Rings.Count = locateRings
	}
	if fs.Changed("points-per-ring") {
		c.Rings.PointsPerRing = locatePointsPerRing
	}
	if fs.Changed("radius-step") {
		c.Rings.RadiusStepMiles = locateRadiusStep
	}
	if fs.Changed("batch-size") {
		c.Pipeline.BatchSize = locateBatchSize
	}
	if fs.Changed("delay") {
		c.Pipeline.InterBatchDelayMs = locateDelayMs
	}
	if fs.Changed("format") {
		c.Export.Format = locateFormat
	}
	if fs.Changed("view") {
		c.Export.View = locateView
	}
	if locateNoLocalize {
		c.Content.Localize = false
	}
}

func exportViews(view string, both bool) ([]export.View, error) {
	if both {
		return []export.View{export.ViewComprehensive, export.ViewBusiness}, nil
	}
	v, err := export.ParseView(view)
	if err != nil {
		return nil, err
	}
	return []export.View{v}, nil
}

// outputPath picks the destination file. An explicit --out is used as a
// file path for a single view and as a directory when writing both views.
func outputPath(out, dir string, view export.View, format export.Format, multi bool) string {
	name := export.DefaultFilename(view, format)
	switch {
	case out == "":
		return filepath.Join(dir, name)
	case multi:
		return filepath.Join(out, name)
	default:
		return out
	}
}

func printSummary(w io.Writer, rs *model.ResultSet) {
	s := rs.Summary()
	fmt.Fprintf(w, "run %s: %d locations, %d distinct cities, %d unresolved, %d rings, max radius %.1f mi\n", //nolint:errcheck
		rs.RunID(), s.Total, s.DistinctCities, s.Unresolved, s.Rings, s.MaxRadiusMiles)
}

func init() {
	f := locateCmd.Flags()
	f.Float64Var(&locateLat, "lat", 0, "center latitude")
	f.Float64Var(&locateLon, "lon", 0, "center longitude")
	f.StringVar(&locateURL, "url", "", "business URL written to every row (default N/A)")
	f.StringVar(&locateKeywords, "keywords", "", "comma-separated keywords (default from config)")
	f.StringVar(&locateNames, "business-names", "", "comma-separated business names (default from config)")
	f.StringArrayVar(&locateDescriptions, "descriptions", nil, "description, repeatable; commas are kept (default from config)")
	f.IntVar(&locateRings, "rings", 0, "number of rings (default from config)")
	f.IntVar(&locatePointsPerRing, "points-per-ring", 0, "points per ring (default: total_points / rings)")
	f.Float64Var(&locateRadiusStep, "radius-step", 0, "miles between rings (default from config)")
	f.IntVar(&locateBatchSize, "batch-size", 0, "concurrent geocode calls per batch (default from config)")
	f.IntVar(&locateDelayMs, "delay", 0, "milliseconds between batches (default from config)")
	f.StringVar(&locateFormat, "format", "", "export format: csv, xlsx, geojson (default from config)")
	f.StringVar(&locateView, "view", "", "export view: comprehensive, business (default from config)")
	f.StringVar(&locateOut, "out", "", "output file, or directory with --both-views")
	f.BoolVar(&locateBothViews, "both-views", false, "write comprehensive and business exports")
	f.BoolVar(&locateNoLocalize, "no-localize", false, "do not append the city to keywords and business names")
	_ = locateCmd.MarkFlagRequired("lat")
	_ = locateCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(locateCmd)
}

