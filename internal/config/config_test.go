package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 32632, cfg.CRS.EPSG)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "survey.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Survey.BatchConcurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SURVEY_CRS_EPSG", "32633")
	t.Setenv("SURVEY_DATASET_PATH", "/data/nga_lga.geojson")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 32633, cfg.CRS.EPSG)
	assert.Equal(t, "/data/nga_lga.geojson", cfg.Dataset.Path)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level", Format: "json"})
	assert.Error(t, err)
}
