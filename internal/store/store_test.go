package store

import (
	"path/filepath"
	"testing"

	"github.com/landserv/survey-cli/internal/config"
)

func testStoreConfig(t *testing.T) config.StoreConfig {
	t.Helper()
	return config.StoreConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "survey.db"),
	}
}
