package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landserv/survey-cli/internal/boundary"
	"github.com/landserv/survey-cli/internal/crs"
	"github.com/landserv/survey-cli/internal/survey"
)

const testDataset = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"lganame": "Bwari"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[7.0, 9.0], [7.2, 9.0], [7.2, 9.2], [7.0, 9.2], [7.0, 9.0]]]
      }
    }
  ]
}`

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lga.geojson")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))

	index, err := boundary.Load(path)
	require.NoError(t, err)

	proj, err := crs.ForEPSG(4326)
	require.NoError(t, err)

	return newRouter(survey.New(index, proj), nil, 100, 100)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	rec := doJSON(t, newTestRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeLocate(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/locate", `{"easting":7.1,"northing":9.1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"region_name":"Bwari"`)

	rec = doJSON(t, h, http.MethodPost, "/v1/locate", `{"easting":0,"northing":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matched":false`)
}

func TestServeLocateBatch(t *testing.T) {
	rec := doJSON(t, newTestRouter(t), http.MethodPost, "/v1/locate",
		`{"points":[[7.1,9.1],[0,0]]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"region_name":"Bwari"`)
	assert.Contains(t, rec.Body.String(), `"matched":false`)
}

func TestServeLocateBadBody(t *testing.T) {
	rec := doJSON(t, newTestRouter(t), http.MethodPost, "/v1/locate", `{bad`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeParcel(t *testing.T) {
	rec := doJSON(t, newTestRouter(t), http.MethodPost, "/v1/parcel",
		`{"points":[[0,0],[0.001,0],[0.001,0.001],[0,0.001]]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":true`)
}

func TestServeParcelErrors(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/parcel", `{"points":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/v1/parcel", `{"points":[[0,0],[1,1]]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServeRateLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lga.geojson")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))

	index, err := boundary.Load(path)
	require.NoError(t, err)
	proj, err := crs.ForEPSG(4326)
	require.NoError(t, err)

	h := newRouter(survey.New(index, proj), nil, 1, 1)

	first := doJSON(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
