// Package survey assembles boundary containment lookups and parcel
// computations into the result records consumed by presentation layers.
package survey

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/landserv/survey-cli/internal/boundary"
	"github.com/landserv/survey-cli/internal/crs"
	"github.com/landserv/survey-cli/internal/geometry"
	"github.com/landserv/survey-cli/internal/traverse"
)

// defaultBatchConcurrency bounds LocateBatch when the caller passes 0.
const defaultBatchConcurrency = 8

// Service answers survey requests against one loaded boundary index and one
// configured projected reference frame. Both are immutable, so a single
// Service is safe for concurrent use.
type Service struct {
	index *boundary.Index
	proj  crs.Projection
	log   *zap.Logger
}

// New creates a Service over a loaded boundary index and the projection of
// the deployment's planar frame.
func New(index *boundary.Index, proj crs.Projection) *Service {
	return &Service{
		index: index,
		proj:  proj,
		log:   zap.L().With(zap.String("component", "survey")),
	}
}

// Projection returns the service's configured planar frame.
func (s *Service) Projection() crs.Projection { return s.proj }

// Index returns the loaded boundary index.
func (s *Service) Index() *boundary.Index { return s.index }

// Locate reprojects a planar point to WGS84 and finds the region containing
// it. A point outside every region is a result with Matched=false, not an
// error.
func (s *Service) Locate(easting, northing float64) (*LocationResult, error) {
	lon, lat, err := s.proj.ToWGS84(easting, northing)
	if err != nil {
		return nil, eris.Wrap(err, "survey: reproject point")
	}

	res := &LocationResult{
		Easting:  easting,
		Northing: northing,
		Lon:      lon,
		Lat:      lat,
	}

	region := s.index.ContainingRegion(lon, lat)
	if region == nil {
		s.log.Debug("no containing region",
			zap.Float64("lon", lon),
			zap.Float64("lat", lat),
		)
		return res, nil
	}

	res.Matched = true
	res.RegionName = region.DisplayName()

	gj, err := geojson.Marshal(region.Geometry)
	if err != nil {
		return nil, eris.Wrap(err, "survey: encode region geometry")
	}
	res.Geometry = gj

	return res, nil
}

// LocateBatch runs Locate over many points with bounded concurrency,
// preserving input order. The first failing point aborts the batch.
func (s *Service) LocateBatch(ctx context.Context, points []geometry.Point, concurrency int) ([]*LocationResult, error) {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	results := make([]*LocationResult, len(points))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.Locate(p.X, p.Y)
			if err != nil {
				return eris.Wrapf(err, "survey: point %d", i+1)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Parcel closes and analyzes a boundary-marker ring, computes its traverse,
// and reprojects ring and centroid to WGS84. The input points are planar
// coordinates in the service's frame.
func (s *Service) Parcel(points []geometry.Point) (*ParcelResult, error) {
	ring := geometry.Ring(points)

	analysis, err := geometry.Analyze(ring)
	if err != nil {
		return nil, err
	}

	closed := ring.Close()
	records := traverse.Compute(closed)

	res := &ParcelResult{
		AreaM2: analysis.AreaM2,
		Valid:  analysis.Valid,
		Rows:   make([]SheetRow, 0, len(records)),
	}

	for _, rec := range records {
		res.PerimeterM += rec.DistanceM
		res.Rows = append(res.Rows, SheetRow{
			PointID:    rec.From + 1,
			Easting:    rec.Station.X,
			Northing:   rec.Station.Y,
			DistanceM:  rec.DistanceM,
			BearingDeg: rec.BearingDeg,
			AngleDeg:   rec.AngleDeg,
		})
	}

	res.CentroidLon, res.CentroidLat, err = s.proj.ToWGS84(analysis.Centroid.X, analysis.Centroid.Y)
	if err != nil {
		return nil, eris.Wrap(err, "survey: reproject centroid")
	}

	res.RingGeographic = make([][2]float64, 0, len(closed))
	for _, p := range closed {
		lon, lat, err := s.proj.ToWGS84(p.X, p.Y)
		if err != nil {
			return nil, eris.Wrap(err, "survey: reproject ring")
		}
		res.RingGeographic = append(res.RingGeographic, [2]float64{lon, lat})
	}

	if !res.Valid {
		s.log.Warn("parcel ring is not a valid simple polygon",
			zap.Int("points", len(points)),
			zap.Float64("area_m2", res.AreaM2),
		)
	}

	return res, nil
}
