package traverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landserv/survey-cli/internal/geometry"
)

func TestComputeSquare(t *testing.T) {
	records := Compute(geometry.Ring{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}})
	require.Len(t, records, 4)

	wantBearings := []float64{0, 90, 180, 270}
	for i, rec := range records {
		assert.InDelta(t, 100, rec.DistanceM, 1e-9, "edge %d distance", i)
		assert.InDelta(t, wantBearings[i], rec.BearingDeg, 1e-9, "edge %d bearing", i)
		assert.InDelta(t, 90, rec.AngleDeg, 1e-9, "vertex %d angle", i)
		assert.Equal(t, i, rec.From)
		assert.Equal(t, (i+1)%4, rec.To)
	}
}

func TestComputeClosesOpenRing(t *testing.T) {
	open := geometry.Ring{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}}
	closed := open.Close()

	assert.Equal(t, Compute(open), Compute(closed))
}

func TestComputeTooShort(t *testing.T) {
	assert.Nil(t, Compute(geometry.Ring{}))
	assert.Nil(t, Compute(geometry.Ring{{X: 0, Y: 0}, {X: 1, Y: 1}}))
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name string
		dx   float64
		dy   float64
		want float64
	}{
		{name: "due north", dx: 0, dy: 10, want: 0},
		{name: "due east", dx: 10, dy: 0, want: 90},
		{name: "due south", dx: 0, dy: -10, want: 180},
		{name: "due west", dx: -10, dy: 0, want: 270},
		{name: "north-east diagonal", dx: 10, dy: 10, want: 45},
		{name: "south-west diagonal", dx: -10, dy: -10, want: 225},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Bearing(tt.dx, tt.dy), 1e-9)
		})
	}
}

func TestTurningAngleSumConvex(t *testing.T) {
	// For a convex polygon the exterior turning angles sum to a full turn.
	rings := []geometry.Ring{
		{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}},
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}},
		{{X: 0, Y: 0}, {X: 50, Y: -10}, {X: 90, Y: 20}, {X: 70, Y: 70}, {X: 10, Y: 60}},
	}

	for _, ring := range rings {
		var sum float64
		for _, rec := range Compute(ring) {
			sum += rec.AngleDeg
		}
		assert.InDelta(t, 360, sum, 1e-6)
	}
}

func TestZeroLengthEdgeAngle(t *testing.T) {
	// A duplicated vertex produces a zero-length edge; its angles are
	// defined as 0 instead of raising a domain error.
	records := Compute(geometry.Ring{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}})
	require.Len(t, records, 5)

	assert.Equal(t, 0.0, records[1].DistanceM)
	assert.Equal(t, 0.0, records[1].AngleDeg)
	assert.Equal(t, 0.0, records[2].AngleDeg)
}

func TestRecordsFollowRingOrder(t *testing.T) {
	ring := geometry.Ring{{X: 5, Y: 5}, {X: 5, Y: 50}, {X: 60, Y: 50}, {X: 60, Y: 5}}
	records := Compute(ring)
	require.Len(t, records, 4)

	for i, rec := range records {
		assert.Equal(t, ring[i], rec.Station)
	}
}
