package boundary

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"github.com/twpayne/go-geom/xy/location"
	"go.uber.org/zap"
)

// Index holds the loaded boundary dataset. It is immutable after Load, so
// concurrent containment queries need no locking.
type Index struct {
	path    string
	regions []*Region
}

// Load reads a boundary dataset (GeoJSON or shapefile, by extension) from
// local storage. It fails when the file is missing, malformed, or contains
// zero polygonal regions.
func Load(path string) (*Index, error) {
	var regions []*Region
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		regions, err = loadGeoJSON(path)
	case ".shp":
		regions, err = loadShapefile(path)
	default:
		return nil, eris.Errorf("boundary: unsupported dataset format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, eris.Errorf("boundary: dataset %s contains no polygonal regions", path)
	}

	zap.L().Info("boundary dataset loaded",
		zap.String("path", path),
		zap.Int("regions", len(regions)),
	)

	return &Index{path: path, regions: regions}, nil
}

// Path returns the dataset path the index was loaded from.
func (ix *Index) Path() string { return ix.path }

// Regions returns the loaded regions in dataset order. The returned slice
// is shared and must not be modified.
func (ix *Index) Regions() []*Region { return ix.regions }

// Len returns the number of loaded regions.
func (ix *Index) Len() int { return len(ix.regions) }

// ContainingRegion returns the first region in load order that contains the
// given geographic point, or nil when no region matches. Containment is
// boundary-inclusive: a point exactly on a region's edge belongs to it.
// A linear scan is fine at administrative-boundary scale (low hundreds of
// polygons).
func (ix *Index) ContainingRegion(lon, lat float64) *Region {
	for _, r := range ix.regions {
		if regionContains(r, lon, lat) {
			return r
		}
	}
	return nil
}

// regionContains tests the point against every ring of the region using the
// even-odd rule: a point inside an odd number of rings is inside the region,
// which handles holes without relying on ring winding. A point on any ring
// boundary counts as inside.
func regionContains(r *Region, lon, lat float64) bool {
	coord := geom.Coord{lon, lat}
	inside := 0

	mp := r.Geometry
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		for j := 0; j < poly.NumLinearRings(); j++ {
			ring := poly.LinearRing(j)
			switch xy.LocatePointInRing(ring.Layout(), coord, ring.FlatCoords()) {
			case location.Boundary:
				return true
			case location.Interior:
				inside++
			}
		}
	}
	return inside%2 == 1
}
