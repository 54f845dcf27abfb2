// Package boundary loads administrative boundary datasets and answers
// point-in-region containment queries.
package boundary

import (
	"strings"

	"github.com/twpayne/go-geom"
)

// unknownRegionName is the display name used when a region carries no
// name-like attribute.
const unknownRegionName = "Unknown"

// Region is one named administrative boundary polygon (or multi-polygon)
// in WGS84 geographic coordinates. Regions are immutable after loading.
type Region struct {
	// ID is the region's zero-based position in dataset load order.
	ID int

	// Fields lists the attribute names in dataset order.
	Fields []string

	// Attrs maps attribute name to its string value.
	Attrs map[string]string

	// Geometry holds the boundary rings (lon/lat degrees).
	Geometry *geom.MultiPolygon
}

// DisplayName resolves the region's display name: the first attribute field
// whose name contains "NAME" (case-insensitive) and has a non-empty value,
// falling back to "Unknown". Resolved per call, not cached at load time.
func (r *Region) DisplayName() string {
	for _, f := range r.Fields {
		if !strings.Contains(strings.ToUpper(f), "NAME") {
			continue
		}
		if v := strings.TrimSpace(r.Attrs[f]); v != "" {
			return v
		}
	}
	return unknownRegionName
}
