// Package geometry analyzes closed parcel rings in a projected planar frame:
// closure, simplicity, shoelace area and centroid.
package geometry

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrInvalidRing is returned when a ring has fewer than 3 distinct vertices.
var ErrInvalidRing = eris.New("geometry: ring needs at least 3 distinct points")

// zeroAreaM2 is the signed-area magnitude below which a ring is treated as
// degenerate (collinear or coincident vertices).
const zeroAreaM2 = 1e-9

// Point is a planar coordinate in meters (easting/northing).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ring is an ordered sequence of planar points describing a parcel boundary.
type Ring []Point

// Closed reports whether the first and last point are equal.
func (r Ring) Closed() bool {
	return len(r) > 1 && r[0] == r[len(r)-1]
}

// Close returns the ring with a copy of the first point appended when the
// ring does not already end on it. Closing is idempotent.
func (r Ring) Close() Ring {
	if len(r) == 0 || r.Closed() {
		return r
	}
	closed := make(Ring, len(r), len(r)+1)
	copy(closed, r)
	return append(closed, r[0])
}

// Vertices returns the ring without the closing duplicate, if present.
func (r Ring) Vertices() Ring {
	if r.Closed() {
		return r[:len(r)-1]
	}
	return r
}

// distinctCount counts distinct vertices, ignoring the closing duplicate.
func (r Ring) distinctCount() int {
	seen := make(map[Point]struct{}, len(r))
	for _, p := range r.Vertices() {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// Analysis is the outcome of analyzing one parcel ring.
type Analysis struct {
	// AreaM2 is the non-negative shoelace area in square meters. Reported
	// best-effort even when Valid is false.
	AreaM2 float64

	// Centroid is the area-weighted polygon centroid, or the arithmetic mean
	// of the vertices when the area degenerates to zero.
	Centroid Point

	// Valid is true when the closed ring has at least 4 points, encloses a
	// non-zero area and is simple (no two non-adjacent edges intersect).
	Valid bool
}

// Analyze closes the ring if needed and computes area, centroid and
// validity. Rings with fewer than 3 distinct vertices are rejected with
// ErrInvalidRing rather than silently corrected.
func Analyze(ring Ring) (Analysis, error) {
	if ring.distinctCount() < 3 {
		return Analysis{}, eris.Wrapf(ErrInvalidRing, "%d points", len(ring))
	}

	closed := ring.Close()
	signed := signedArea(closed)
	area := math.Abs(signed)

	return Analysis{
		AreaM2:   area,
		Centroid: centroid(closed, signed),
		Valid:    len(closed) >= 4 && area > zeroAreaM2 && isSimple(closed),
	}, nil
}

// signedArea computes the shoelace sum over a closed ring. Positive for
// counter-clockwise winding.
func signedArea(closed Ring) float64 {
	var sum float64
	for i := 0; i < len(closed)-1; i++ {
		sum += closed[i].X*closed[i+1].Y - closed[i+1].X*closed[i].Y
	}
	return sum / 2
}

// centroid computes the area-weighted centroid of a closed ring, degrading
// to the vertex mean when the signed area underflows to zero.
func centroid(closed Ring, signed float64) Point {
	verts := closed.Vertices()
	if math.Abs(signed) <= zeroAreaM2 {
		var sx, sy float64
		for _, p := range verts {
			sx += p.X
			sy += p.Y
		}
		n := float64(len(verts))
		return Point{X: sx / n, Y: sy / n}
	}

	var cx, cy float64
	for i := 0; i < len(closed)-1; i++ {
		cross := closed[i].X*closed[i+1].Y - closed[i+1].X*closed[i].Y
		cx += (closed[i].X + closed[i+1].X) * cross
		cy += (closed[i].Y + closed[i+1].Y) * cross
	}
	return Point{X: cx / (6 * signed), Y: cy / (6 * signed)}
}

// isSimple reports whether no two non-adjacent edges of the closed ring
// intersect. Consecutive duplicate points are dropped first so zero-length
// edges cannot distort edge adjacency.
func isSimple(closed Ring) bool {
	closed = dedupeConsecutive(closed)
	n := len(closed) - 1 // edge count
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsIntersect(closed[i], closed[i+1], closed[j], closed[j+1]) {
				return false
			}
		}
	}
	return true
}

// dedupeConsecutive removes consecutive duplicate points, preserving closure.
func dedupeConsecutive(closed Ring) Ring {
	out := make(Ring, 0, len(closed))
	for _, p := range closed {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

// segmentsIntersect reports whether segments ab and cd share any point,
// including collinear overlap.
func segmentsIntersect(a, b, c, d Point) bool {
	if a == b || c == d {
		return false
	}

	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(c, d, a):
		return true
	case d2 == 0 && onSegment(c, d, b):
		return true
	case d3 == 0 && onSegment(a, b, c):
		return true
	case d4 == 0 && onSegment(a, b, d):
		return true
	}
	return false
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// onSegment reports whether p, already known collinear with ab, lies within
// the segment's bounding box.
func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
