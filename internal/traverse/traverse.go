// Package traverse computes survey traverse records for a closed parcel
// ring: per-edge distance, grid bearing and per-vertex turning angle.
package traverse

import (
	"math"

	"github.com/landserv/survey-cli/internal/geometry"
)

// Record describes one edge of the traverse, anchored at its start station.
type Record struct {
	// From and To are zero-based vertex indices into the closed ring.
	From int `json:"from"`
	To   int `json:"to"`

	// Station is the edge's start vertex.
	Station geometry.Point `json:"station"`

	// DistanceM is the planar length of the edge in meters.
	DistanceM float64 `json:"distance_m"`

	// BearingDeg is the grid bearing of the edge in [0, 360): 0 along the
	// northing axis, increasing clockwise (surveying convention).
	BearingDeg float64 `json:"bearing_deg"`

	// AngleDeg is the turning angle at the start vertex, between the
	// incoming edge (cyclic, so the first vertex's incoming edge is the
	// ring's last) and this edge. Zero when either edge has zero length.
	AngleDeg float64 `json:"angle_deg"`
}

// Compute returns one Record per edge of the ring, in ring order. The ring
// is closed first if needed; a ring with fewer than 3 vertices yields nil.
func Compute(ring geometry.Ring) []Record {
	closed := ring.Close()
	n := len(closed) - 1 // edges
	if n < 3 {
		return nil
	}

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		dx := closed[i+1].X - closed[i].X
		dy := closed[i+1].Y - closed[i].Y

		prev := (i - 1 + n) % n
		vinX := closed[prev+1].X - closed[prev].X
		vinY := closed[prev+1].Y - closed[prev].Y

		records = append(records, Record{
			From:       i,
			To:         (i + 1) % n,
			Station:    closed[i],
			DistanceM:  math.Hypot(dx, dy),
			BearingDeg: Bearing(dx, dy),
			AngleDeg:   angleBetween(vinX, vinY, dx, dy),
		})
	}
	return records
}

// Bearing converts easting/northing deltas to a grid bearing in [0, 360).
func Bearing(dx, dy float64) float64 {
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// angleBetween returns the angle between two edge vectors in degrees,
// defined as 0 when either vector has zero magnitude.
func angleBetween(x1, y1, x2, y2 float64) float64 {
	m1 := math.Hypot(x1, y1)
	m2 := math.Hypot(x2, y2)
	if m1 == 0 || m2 == 0 {
		return 0
	}
	cos := (x1*x2 + y1*y2) / (m1 * m2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
