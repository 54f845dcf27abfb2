// Package crs converts coordinates between projected planar reference frames
// and WGS84 geographic coordinates.
package crs

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrUnknownCRS is returned by ForEPSG for codes not in the registry.
var ErrUnknownCRS = eris.New("crs: unknown EPSG code")

// Projection converts between one projected planar frame (x/y in the frame's
// units, meters for every frame in the registry) and WGS84 longitude/latitude
// in degrees. Implementations are immutable and safe for concurrent use.
type Projection interface {
	// ToWGS84 converts planar easting/northing to lon/lat degrees.
	ToWGS84(x, y float64) (lon, lat float64, err error)

	// FromWGS84 converts lon/lat degrees to planar easting/northing.
	FromWGS84(lon, lat float64) (x, y float64, err error)

	// EPSG returns the EPSG code of the projected frame.
	EPSG() int
}

// ForEPSG returns the Projection for an EPSG code. Supported codes are 4326
// (geographic pass-through), 3857 (Web Mercator) and the UTM zones
// 32601-32660 (north) and 32701-32760 (south).
func ForEPSG(code int) (Projection, error) {
	switch {
	case code == 4326:
		return geographic{}, nil
	case code == 3857:
		return webMercator{}, nil
	case code >= 32601 && code <= 32660:
		return newUTM(code, code-32600, true), nil
	case code >= 32701 && code <= 32760:
		return newUTM(code, code-32700, false), nil
	}
	return nil, eris.Wrapf(ErrUnknownCRS, "EPSG:%d", code)
}

// geographic is the EPSG:4326 pass-through used when input coordinates are
// already lon/lat.
type geographic struct{}

func (geographic) EPSG() int { return 4326 }

func (geographic) ToWGS84(x, y float64) (float64, float64, error) {
	if err := checkFinite(x, y); err != nil {
		return 0, 0, err
	}
	if math.Abs(x) > 180 || math.Abs(y) > 90 {
		return 0, 0, eris.Errorf("crs: lon/lat (%g, %g) out of range", x, y)
	}
	return x, y, nil
}

func (geographic) FromWGS84(lon, lat float64) (float64, float64, error) {
	if err := checkFinite(lon, lat); err != nil {
		return 0, 0, err
	}
	return lon, lat, nil
}

const (
	wgs84SemiMajorM = 6378137.0
	wgs84Flattening = 1.0 / 298.257223563
)

// maxMercatorLat is the latitude where Web Mercator y diverges.
const maxMercatorLat = 85.06

type webMercator struct{}

func (webMercator) EPSG() int { return 3857 }

func (webMercator) ToWGS84(x, y float64) (float64, float64, error) {
	if err := checkFinite(x, y); err != nil {
		return 0, 0, err
	}
	lon := x / wgs84SemiMajorM * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(y/wgs84SemiMajorM)) - math.Pi/2) * 180 / math.Pi
	if math.Abs(lon) > 180 {
		return 0, 0, eris.Errorf("crs: easting %g outside Web Mercator domain", x)
	}
	return lon, lat, nil
}

func (webMercator) FromWGS84(lon, lat float64) (float64, float64, error) {
	if err := checkFinite(lon, lat); err != nil {
		return 0, 0, err
	}
	if math.Abs(lat) > maxMercatorLat {
		return 0, 0, eris.Errorf("crs: latitude %g outside Web Mercator domain", lat)
	}
	x := lon * math.Pi / 180 * wgs84SemiMajorM
	y := math.Log(math.Tan(math.Pi/4+lat*math.Pi/180/2)) * wgs84SemiMajorM
	return x, y, nil
}

func checkFinite(a, b float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return eris.New("crs: non-finite coordinate")
	}
	return nil
}
