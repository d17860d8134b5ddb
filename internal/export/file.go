package export

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geo-locator/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat validates a format name. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatGeoJSON, "json":
		return FormatGeoJSON, nil
	default:
		return "", eris.Errorf("export: unknown format %q", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatGeoJSON:
		return "application/geo+json"
	default:
		return "text/csv; charset=utf-8"
	}
}

// DefaultFilename returns the conventional file name for a view and format.
func DefaultFilename(view View, format Format) string {
	base := "geo_business_locations_comprehensive"
	if view == ViewBusiness {
		base = "business_locations_only"
	}
	return base + "." + string(format)
}

// Write dispatches to the writer for format.
func Write(w io.Writer, rs *model.ResultSet, format Format, view View) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rs, view)
	case FormatXLSX:
		return WriteXLSX(w, rs, view)
	case FormatGeoJSON:
		return WriteGeoJSON(w, rs)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}

// ExportFile writes the result set to path, replacing any existing file.
func ExportFile(path string, rs *model.ResultSet, format Format, view View) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close() //nolint:errcheck

	bw := bufio.NewWriter(f)
	if err := Write(bw, rs, format, view); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return eris.Wrap(err, "export: flush file")
	}
	return eris.Wrap(f.Close(), "export: close file")
}
