package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/geo-locator/internal/model"
)

// SheetName is the worksheet the XLSX export writes to.
const SheetName = "locations"

// WriteXLSX writes the result set as a single-sheet workbook. Numeric
// columns are stored as numbers.
func WriteXLSX(w io.Writer, rs *model.ResultSet, view View) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx export: add sheet")
	}

	header := sheet.AddRow()
	for _, name := range Columns(view) {
		header.AddCell().SetString(name)
	}

	fields := fieldsFor(view)
	for _, loc := range rs.Locations() {
		row := sheet.AddRow()
		for _, fd := range fields {
			cell := row.AddCell()
			switch v := fd.get(loc).(type) {
			case int:
				cell.SetInt(v)
			case float64:
				cell.SetFloat(v)
			default:
				cell.SetString(fd.text(loc))
			}
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx export: write workbook")
	}
	return nil
}
