package crs

import (
	"math"

	"github.com/rotisserie/eris"
)

// utm implements the ellipsoidal transverse Mercator projection on the WGS84
// ellipsoid using the Krüger series (4th order in the third flattening),
// which keeps forward/inverse errors well under a millimeter anywhere a UTM
// zone is meaningfully used.
type utm struct {
	epsg          int
	lon0          float64 // central meridian, radians
	falseNorthing float64
}

const (
	utmScale        = 0.9996
	utmFalseEasting = 500000.0

	// Points this far from the central meridian are outside any sane use of
	// the zone and approach the projection's singularity.
	maxZoneOffsetRad = 60 * math.Pi / 180

	maxUTMLat = 89.99
)

// Derived WGS84 series constants, shared by all zones.
var (
	utmN  = wgs84Flattening / (2 - wgs84Flattening)
	utmE  = math.Sqrt(wgs84Flattening * (2 - wgs84Flattening))
	utmE2 = wgs84Flattening * (2 - wgs84Flattening)

	// Rectifying radius.
	utmA = wgs84SemiMajorM / (1 + utmN) * (1 + utmN*utmN/4 + utmN*utmN*utmN*utmN/64)

	utmAlpha = [4]float64{
		utmN/2 - 2*utmN*utmN/3 + 5*utmN*utmN*utmN/16 + 41*utmN*utmN*utmN*utmN/180,
		13*utmN*utmN/48 - 3*utmN*utmN*utmN/5 + 557*utmN*utmN*utmN*utmN/1440,
		61*utmN*utmN*utmN/240 - 103*utmN*utmN*utmN*utmN/140,
		49561 * utmN * utmN * utmN * utmN / 161280,
	}

	utmBeta = [4]float64{
		utmN/2 - 2*utmN*utmN/3 + 37*utmN*utmN*utmN/96 - utmN*utmN*utmN*utmN/360,
		utmN*utmN/48 + utmN*utmN*utmN/15 - 437*utmN*utmN*utmN*utmN/1440,
		17*utmN*utmN*utmN/480 - 37*utmN*utmN*utmN*utmN/840,
		4397 * utmN * utmN * utmN * utmN / 161280,
	}
)

func newUTM(epsg, zone int, northern bool) utm {
	fn := 10000000.0
	if northern {
		fn = 0
	}
	lon0 := float64(zone*6-183) * math.Pi / 180
	return utm{epsg: epsg, lon0: lon0, falseNorthing: fn}
}

func (u utm) EPSG() int { return u.epsg }

func (u utm) FromWGS84(lon, lat float64) (float64, float64, error) {
	if err := checkFinite(lon, lat); err != nil {
		return 0, 0, err
	}
	if math.Abs(lat) > maxUTMLat {
		return 0, 0, eris.Errorf("crs: latitude %g outside transverse Mercator domain", lat)
	}

	phi := lat * math.Pi / 180
	dLon := normalizeRad(lon*math.Pi/180 - u.lon0)
	if math.Abs(dLon) > maxZoneOffsetRad {
		return 0, 0, eris.Errorf("crs: longitude %g too far from EPSG:%d central meridian", lon, u.epsg)
	}

	tauP := taupf(math.Tan(phi))
	xiP := math.Atan2(tauP, math.Cos(dLon))
	etaP := math.Asinh(math.Sin(dLon) / math.Hypot(tauP, math.Cos(dLon)))

	xi, eta := xiP, etaP
	for j, a := range utmAlpha {
		k := 2 * float64(j+1)
		xi += a * math.Sin(k*xiP) * math.Cosh(k*etaP)
		eta += a * math.Cos(k*xiP) * math.Sinh(k*etaP)
	}

	x := utmFalseEasting + utmScale*utmA*eta
	y := u.falseNorthing + utmScale*utmA*xi
	return x, y, nil
}

func (u utm) ToWGS84(x, y float64) (float64, float64, error) {
	if err := checkFinite(x, y); err != nil {
		return 0, 0, err
	}

	xi := (y - u.falseNorthing) / (utmScale * utmA)
	eta := (x - utmFalseEasting) / (utmScale * utmA)

	xiP, etaP := xi, eta
	for j, b := range utmBeta {
		k := 2 * float64(j+1)
		xiP -= b * math.Sin(k*xi) * math.Cosh(k*eta)
		etaP -= b * math.Cos(k*xi) * math.Sinh(k*eta)
	}

	denom := math.Hypot(math.Sinh(etaP), math.Cos(xiP))
	if denom == 0 {
		return 0, 0, eris.Errorf("crs: point (%g, %g) outside EPSG:%d projection domain", x, y, u.epsg)
	}

	tauP := math.Sin(xiP) / denom
	dLon := math.Atan2(math.Sinh(etaP), math.Cos(xiP))
	if math.Abs(dLon) > maxZoneOffsetRad {
		return 0, 0, eris.Errorf("crs: point (%g, %g) outside EPSG:%d projection domain", x, y, u.epsg)
	}

	lat := math.Atan(tauf(tauP)) * 180 / math.Pi
	lon := normalizeRad(u.lon0+dLon) * 180 / math.Pi
	if err := checkFinite(lon, lat); err != nil {
		return 0, 0, eris.Errorf("crs: point (%g, %g) outside EPSG:%d projection domain", x, y, u.epsg)
	}
	return lon, lat, nil
}

// taupf maps tan(phi) to the tangent of the conformal latitude,
// sigma being sinh(e * atanh(e * sin(phi))).
func taupf(tau float64) float64 {
	sigma := math.Sinh(utmE * math.Atanh(utmE*tau/math.Hypot(1, tau)))
	return tau*math.Hypot(1, sigma) - sigma*math.Hypot(1, tau)
}

// tauf inverts taupf by Newton iteration (Karney 2011).
func tauf(tauP float64) float64 {
	e2m := 1 - utmE2
	tau := tauP / e2m
	tol := math.Sqrt(math.SmallestNonzeroFloat64) * math.Max(1, math.Abs(tauP))
	for i := 0; i < 5; i++ {
		tauPA := taupf(tau)
		dtau := (tauP - tauPA) * (1 + e2m*tau*tau) /
			(e2m * math.Hypot(1, tau) * math.Hypot(1, tauPA))
		tau += dtau
		if math.Abs(dtau) < tol {
			break
		}
	}
	return tau
}

// normalizeRad wraps an angle to (-pi, pi].
func normalizeRad(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
