package sheet

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/landserv/survey-cli/internal/survey"
)

// WriteCSV writes the parcel computation sheet as CSV.
func WriteCSV(path string, res *survey.ParcelResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "sheet: create %s", path)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	if err := w.Write(columns); err != nil {
		return eris.Wrap(err, "sheet: write header")
	}

	for _, row := range res.Rows {
		record := []string{
			strconv.Itoa(row.PointID),
			strconv.FormatFloat(row.Easting, 'f', 3, 64),
			strconv.FormatFloat(row.Northing, 'f', 3, 64),
			strconv.FormatFloat(row.DistanceM, 'f', 3, 64),
			FormatDMS(row.BearingDeg),
			FormatDMS(row.AngleDeg),
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "sheet: write row")
		}
	}

	if err := w.Write([]string{""}); err != nil {
		return eris.Wrap(err, "sheet: write spacer")
	}
	for _, kv := range summaryRows(res) {
		if err := w.Write([]string{kv[0], kv[1]}); err != nil {
			return eris.Wrap(err, "sheet: write summary")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "sheet: flush")
	}
	return nil
}
