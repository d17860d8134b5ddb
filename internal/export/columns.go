// Package export writes result sets as CSV, XLSX, or GeoJSON.
package export

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geo-locator/internal/model"
)

// View selects which columns a tabular export contains.
type View string

const (
	// ViewComprehensive includes every row field.
	ViewComprehensive View = "comprehensive"
	// ViewBusiness projects the business-listing columns only.
	ViewBusiness View = "business"
)

// ParseView validates a view name. Empty means comprehensive.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewComprehensive:
		return ViewComprehensive, nil
	case ViewBusiness:
		return ViewBusiness, nil
	default:
		return "", eris.Errorf("export: unknown view %q", s)
	}
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindCoord
	kindNumber
	kindInt
)

// field is one output column. Header names and order are a stable schema
// consumed downstream; do not rename or reorder.
type field struct {
	name string
	kind fieldKind
	get  func(l model.ResolvedLocation) any
}

var (
	fLatitude     = field{"latitude", kindCoord, func(l model.ResolvedLocation) any { return l.Latitude }}
	fLongitude    = field{"longitude", kindCoord, func(l model.ResolvedLocation) any { return l.Longitude }}
	fCityState    = field{"cityState", kindText, func(l model.ResolvedLocation) any { return l.CityState }}
	fKeyword      = field{"keyword", kindText, func(l model.ResolvedLocation) any { return l.Keyword }}
	fBusinessName = field{"businessName", kindText, func(l model.ResolvedLocation) any { return l.BusinessName }}
	fDescription  = field{"description", kindText, func(l model.ResolvedLocation) any { return l.Description }}
	fColor        = field{"color", kindText, func(l model.ResolvedLocation) any { return l.Color }}
	fDiscNumber   = field{"discNumber", kindInt, func(l model.ResolvedLocation) any { return l.RingIndex }}
	fRadiusMiles  = field{"radiusMiles", kindNumber, func(l model.ResolvedLocation) any { return l.RadiusMiles }}
	fBusinessURL  = field{"businessUrl", kindText, func(l model.ResolvedLocation) any { return l.BusinessURL }}
)

var comprehensiveFields = []field{
	fLatitude, fLongitude, fCityState, fKeyword, fBusinessName,
	fDescription, fColor, fDiscNumber, fRadiusMiles, fBusinessURL,
}

var businessFields = []field{
	fBusinessName, fCityState, fLatitude, fLongitude, fKeyword,
	fBusinessURL, fDiscNumber, fRadiusMiles,
}

func fieldsFor(v View) []field {
	if v == ViewBusiness {
		return businessFields
	}
	return comprehensiveFields
}

// Columns returns the header row for a view.
func Columns(v View) []string {
	fields := fieldsFor(v)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.name
	}
	return out
}

// text renders the field for text formats. Coordinates use six decimals.
func (f field) text(l model.ResolvedLocation) string {
	switch v := f.get(l).(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		if f.kind == kindCoord {
			return strconv.FormatFloat(v, 'f', 6, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
