package export

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/geo-locator/internal/model"
)

// WriteGeoJSON writes every row as a Point feature. Properties carry the row
// fields plus a simplestyle marker-color so map viewers color rings.
func WriteGeoJSON(w io.Writer, rs *model.ResultSet) error {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, rs.Len()),
	}

	for _, loc := range rs.Locations() {
		pt := geom.NewPointFlat(geom.XY, []float64{loc.Longitude, loc.Latitude})
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       strconv.Itoa(loc.SequenceIndex),
			Geometry: pt,
			Properties: map[string]interface{}{
				"sequenceIndex": loc.SequenceIndex,
				"discNumber":    loc.RingIndex,
				"radiusMiles":   loc.RadiusMiles,
				"cityState":     loc.CityState,
				"keyword":       loc.Keyword,
				"businessName":  loc.BusinessName,
				"description":   loc.Description,
				"color":         loc.Color,
				"marker-color":  loc.Color,
				"businessUrl":   loc.BusinessURL,
			},
		})
	}

	if err := json.NewEncoder(w).Encode(fc); err != nil {
		return eris.Wrap(err, "geojson export: encode")
	}
	return nil
}
