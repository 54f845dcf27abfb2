package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/landserv/survey-cli/internal/boundary"
	"github.com/landserv/survey-cli/internal/crs"
	"github.com/landserv/survey-cli/internal/geometry"
	"github.com/landserv/survey-cli/internal/store"
	"github.com/landserv/survey-cli/internal/survey"
)

// initService loads the boundary dataset and resolves the working
// projection. A non-zero epsg overrides the configured one.
func initService(epsg int) (*survey.Service, error) {
	if epsg == 0 {
		epsg = cfg.CRS.EPSG
	}

	proj, err := crs.ForEPSG(epsg)
	if err != nil {
		return nil, err
	}

	index, err := boundary.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}

	return survey.New(index, proj), nil
}

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// recordRun persists a request/result pair to the run history store. A
// persistence failure never fails the survey itself.
func recordRun(ctx context.Context, kind string, request, result any) {
	st, err := initStore(ctx)
	if err != nil {
		zap.L().Warn("run history unavailable", zap.Error(err))
		return
	}
	defer st.Close() //nolint:errcheck

	if _, err := st.SaveRun(ctx, kind, request, result); err != nil {
		zap.L().Warn("save run failed", zap.String("kind", kind), zap.Error(err))
	}
}

// parsePoint parses an "easting,northing" argument.
func parsePoint(arg string) (geometry.Point, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return geometry.Point{}, eris.Errorf("expected easting,northing, got %q", arg)
	}

	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return geometry.Point{}, eris.Errorf("%q is not a coordinate pair", arg)
	}

	return geometry.Point{X: x, Y: y}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
