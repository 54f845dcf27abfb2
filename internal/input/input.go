// Package input reads survey point lists from CSV and XLSX files. Each row
// is a projected coordinate pair; a header row is detected and skipped when
// its first cell is not numeric.
package input

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/landserv/survey-cli/internal/geometry"
)

// ReadPoints dispatches on the file extension.
func ReadPoints(path string) ([]geometry.Point, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadPointsCSV(path)
	case ".xlsx":
		return ReadPointsXLSX(path)
	default:
		return nil, eris.Errorf("input: unsupported file extension %q", filepath.Ext(path))
	}
}

// ReadPointsCSV reads easting/northing pairs from the first two columns of a
// CSV file.
func ReadPointsCSV(path string) ([]geometry.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: open %s", path)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "input: read csv")
	}

	return rowsToPoints(records)
}

// ReadPointsXLSX reads easting/northing pairs from the first two columns of
// the first worksheet.
func ReadPointsXLSX(path string) ([]geometry.Point, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: open %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("input: %s has no worksheets", path)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}

	return rowsToPoints(rows)
}

// rowsToPoints converts raw rows to points. The first row is skipped when it
// does not parse as a coordinate, which covers header rows. Blank rows are
// skipped anywhere.
func rowsToPoints(rows [][]string) ([]geometry.Point, error) {
	points := make([]geometry.Point, 0, len(rows))
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		if len(row) < 2 {
			return nil, eris.Errorf("input: row %d has %d columns, need 2", i+1, len(row))
		}

		x, errX := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if errX != nil || errY != nil {
			if i == 0 {
				continue // header row
			}
			return nil, eris.Errorf("input: row %d: %q, %q is not a coordinate pair", i+1, row[0], row[1])
		}

		points = append(points, geometry.Point{X: x, Y: y})
	}

	if len(points) == 0 {
		return nil, eris.New("input: no coordinate rows found")
	}
	return points, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
