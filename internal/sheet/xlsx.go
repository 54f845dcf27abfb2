package sheet

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/landserv/survey-cli/internal/survey"
)

// WriteXLSX writes the parcel computation sheet to an XLSX workbook.
func WriteXLSX(path string, res *survey.ParcelResult) error {
	file := xlsx.NewFile()
	ws, err := file.AddSheet("Computation")
	if err != nil {
		return eris.Wrap(err, "sheet: add worksheet")
	}

	header := ws.AddRow()
	for _, col := range columns {
		header.AddCell().Value = col
	}

	for _, row := range res.Rows {
		r := ws.AddRow()
		r.AddCell().SetInt(row.PointID)
		r.AddCell().SetFloat(row.Easting)
		r.AddCell().SetFloat(row.Northing)
		r.AddCell().SetFloat(row.DistanceM)
		r.AddCell().Value = FormatDMS(row.BearingDeg)
		r.AddCell().Value = FormatDMS(row.AngleDeg)
	}

	ws.AddRow() // spacer
	for _, kv := range summaryRows(res) {
		r := ws.AddRow()
		r.AddCell().Value = kv[0]
		r.AddCell().Value = kv[1]
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "sheet: save %s", path)
	}
	return nil
}
