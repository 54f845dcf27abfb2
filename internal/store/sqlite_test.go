package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "survey.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteSaveAndGetRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	request := map[string]float64{"easting": 500000, "northing": 100000}
	result := map[string]any{"matched": true, "region_name": "Bwari"}

	run, err := s.SaveRun(ctx, KindLocate, request, result)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, KindLocate, run.Kind)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.JSONEq(t, `{"easting":500000,"northing":100000}`, string(got.Request))
	assert.JSONEq(t, `{"matched":true,"region_name":"Bwari"}`, string(got.Result))
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get run")
}

func TestSQLiteListRuns(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.SaveRun(ctx, KindLocate, map[string]int{"i": i}, map[string]bool{"matched": false})
		require.NoError(t, err)
	}
	_, err := s.SaveRun(ctx, KindParcel, map[string]int{"points": 4}, map[string]float64{"area_m2": 10000})
	require.NoError(t, err)

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	parcels, err := s.ListRuns(ctx, RunFilter{Kind: KindParcel})
	require.NoError(t, err)
	require.Len(t, parcels, 1)
	assert.Equal(t, KindParcel, parcels[0].Kind)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite", func(t *testing.T) {
		s, err := Open(ctx, testStoreConfig(t))
		require.NoError(t, err)
		defer s.Close()
		_, ok := s.(*SQLiteStore)
		assert.True(t, ok)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := testStoreConfig(t)
		cfg.Driver = "oracle"
		_, err := Open(ctx, cfg)
		assert.Error(t, err)
	})
}
