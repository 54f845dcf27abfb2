package survey

import "encoding/json"

// LocationResult is the outcome of one containment query.
type LocationResult struct {
	// Easting and Northing echo the planar input coordinates.
	Easting  float64 `json:"easting"`
	Northing float64 `json:"northing"`

	// Lon and Lat are the reprojected geographic coordinates.
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`

	// Matched is false when no region contains the point; RegionName is
	// then empty and Geometry nil.
	Matched    bool   `json:"matched"`
	RegionName string `json:"region_name,omitempty"`

	// Geometry is the matched region's boundary as GeoJSON, for map
	// rendering by presentation layers.
	Geometry json.RawMessage `json:"geometry,omitempty"`
}

// SheetRow is one row of the survey computation sheet: the station, the
// edge leaving it, and the turning angle at it.
type SheetRow struct {
	PointID    int     `json:"point_id"` // 1-based station number
	Easting    float64 `json:"easting"`
	Northing   float64 `json:"northing"`
	DistanceM  float64 `json:"distance_m"`
	BearingDeg float64 `json:"bearing_deg"`
	AngleDeg   float64 `json:"angle_deg"`
}

// ParcelResult is the outcome of one parcel survey computation.
type ParcelResult struct {
	// AreaM2 is the planar shoelace area in square meters. Best-effort even
	// when Valid is false; official use requires Valid.
	AreaM2 float64 `json:"area_m2"`

	// PerimeterM is the sum of all edge distances.
	PerimeterM float64 `json:"perimeter_m"`

	// Valid is false for degenerate or self-intersecting rings.
	Valid bool `json:"valid"`

	// CentroidLon and CentroidLat are the parcel centroid reprojected to
	// WGS84.
	CentroidLon float64 `json:"centroid_lon"`
	CentroidLat float64 `json:"centroid_lat"`

	// Rows is the computation sheet, in ring edge order.
	Rows []SheetRow `json:"rows"`

	// RingGeographic is the closed ring reprojected to WGS84 lon/lat pairs,
	// for map rendering.
	RingGeographic [][2]float64 `json:"ring_geographic"`
}
