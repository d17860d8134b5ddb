package export

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geo-locator/internal/model"
)

// WriteCSV writes the result set as CSV with a header row.
func WriteCSV(w io.Writer, rs *model.ResultSet, view View) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns(view)); err != nil {
		return eris.Wrap(err, "csv export: write header")
	}

	fields := fieldsFor(view)
	for _, loc := range rs.Locations() {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = f.text(loc)
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "csv export: write row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "csv export: flush")
}
