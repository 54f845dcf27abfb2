package boundary

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// loadGeoJSON reads a GeoJSON FeatureCollection and returns all polygonal
// features as Regions. Non-polygonal features are skipped.
func loadGeoJSON(path string) ([]*Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: read %s", path)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "boundary: parse GeoJSON %s", path)
	}

	var regions []*Region
	var skipped int
	for _, f := range fc.Features {
		mp := toMultiPolygon(f.Geometry)
		if mp == nil {
			skipped++
			continue
		}

		fields, attrs := propertyFields(f.Properties)
		regions = append(regions, &Region{
			ID:       len(regions),
			Fields:   fields,
			Attrs:    attrs,
			Geometry: mp,
		})
	}

	if skipped > 0 {
		zap.L().Debug("boundary: skipped non-polygonal features",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return regions, nil
}

// toMultiPolygon normalizes a decoded geometry to a MultiPolygon.
func toMultiPolygon(g geom.T) *geom.MultiPolygon {
	switch t := g.(type) {
	case *geom.MultiPolygon:
		return t
	case *geom.Polygon:
		mp := geom.NewMultiPolygon(t.Layout())
		if err := mp.Push(t); err != nil {
			return nil
		}
		return mp
	default:
		return nil
	}
}

// propertyFields flattens GeoJSON properties into ordered field names and
// string values. JSON objects carry no key order, so names are sorted for a
// deterministic "first field" during display-name resolution.
func propertyFields(props map[string]interface{}) ([]string, map[string]string) {
	fields := make([]string, 0, len(props))
	attrs := make(map[string]string, len(props))
	for k, v := range props {
		fields = append(fields, k)
		if v == nil {
			attrs[k] = ""
			continue
		}
		attrs[k] = fmt.Sprint(v)
	}
	sort.Strings(fields)
	return fields, attrs
}
