package sheet

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/landserv/survey-cli/internal/survey"
)

func sampleResult() *survey.ParcelResult {
	return &survey.ParcelResult{
		AreaM2:      10000,
		PerimeterM:  400,
		Valid:       true,
		CentroidLon: 9.000451,
		CentroidLat: 0.000452,
		Rows: []survey.SheetRow{
			{PointID: 1, Easting: 500000, Northing: 0, DistanceM: 100, BearingDeg: 0, AngleDeg: 90},
			{PointID: 2, Easting: 500000, Northing: 100, DistanceM: 100, BearingDeg: 90, AngleDeg: 90},
			{PointID: 3, Easting: 500100, Northing: 100, DistanceM: 100, BearingDeg: 180, AngleDeg: 90},
			{PointID: 4, Easting: 500100, Northing: 0, DistanceM: 100, BearingDeg: 270, AngleDeg: 90},
		},
	}
}

func TestFormatDMS(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		want string
	}{
		{name: "zero", deg: 0, want: `0°00'00"`},
		{name: "whole degrees", deg: 90, want: `90°00'00"`},
		{name: "minutes", deg: 45.5, want: `45°30'00"`},
		{name: "seconds", deg: 10.2625, want: `10°15'45"`},
		{name: "seconds round up", deg: 359.99999, want: `360°00'00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDMS(tt.deg))
		})
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "computation.xlsx")
	require.NoError(t, WriteXLSX(path, sampleResult()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	ws := f.Sheets[0]
	assert.Equal(t, "Computation", ws.Name)

	// Header + 4 traverse rows + spacer + 5 summary rows.
	require.GreaterOrEqual(t, len(ws.Rows), 10)
	assert.Equal(t, "Point", ws.Rows[0].Cells[0].String())
	assert.Equal(t, `90°00'00"`, ws.Rows[1].Cells[5].String())

	var flat []string
	for _, row := range ws.Rows {
		for _, cell := range row.Cells {
			flat = append(flat, cell.String())
		}
	}
	assert.Contains(t, flat, "10,000.00")
	assert.Contains(t, flat, "VALID")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "computation.csv")
	require.NoError(t, WriteCSV(path, sampleResult()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(records), 10)
	assert.Equal(t, "Point", records[0][0])
	assert.Equal(t, "500000.000", records[1][1])
	assert.Equal(t, `0°00'00"`, records[1][4])
}

func TestWriteCSVInvalidParcel(t *testing.T) {
	res := sampleResult()
	res.Valid = false

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, WriteCSV(path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "NOT VALID")
}
