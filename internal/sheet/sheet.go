// Package sheet renders parcel survey results as computation sheets in XLSX
// or CSV form for downstream presentation.
package sheet

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/landserv/survey-cli/internal/survey"
)

// columns is the computation sheet header, in surveying row order.
var columns = []string{"Point", "Easting (m)", "Northing (m)", "Distance (m)", "Bearing", "Angle"}

// printer renders grouped decimal numbers for the summary block.
var printer = message.NewPrinter(language.English)

// FormatDMS renders an angle in degrees as degrees-minutes-seconds, the
// notation surveyors expect on a computation sheet. Seconds are rounded to
// whole units, carrying into minutes and degrees as needed.
func FormatDMS(deg float64) string {
	total := math.Round(deg * 3600)
	d := int(total) / 3600
	m := (int(total) % 3600) / 60
	s := int(total) % 60
	return fmt.Sprintf("%d°%02d'%02d\"", d, m, s)
}

// summaryRows returns the label/value pairs appended below the traverse
// table.
func summaryRows(res *survey.ParcelResult) [][2]string {
	status := "VALID"
	if !res.Valid {
		status = "NOT VALID — check marker order"
	}
	return [][2]string{
		{"Area (m²)", printer.Sprintf("%.2f", res.AreaM2)},
		{"Area (ha)", printer.Sprintf("%.4f", res.AreaM2/10000)},
		{"Perimeter (m)", printer.Sprintf("%.2f", res.PerimeterM)},
		{"Centroid (lon, lat)", fmt.Sprintf("%.6f, %.6f", res.CentroidLon, res.CentroidLat)},
		{"Polygon", status},
	}
}
