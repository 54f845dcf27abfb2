// Package store persists survey run history: one record per containment or
// parcel request, with its input and result snapshots.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/landserv/survey-cli/internal/config"
)

// Run kinds.
const (
	KindLocate = "locate"
	KindParcel = "parcel"
)

// Run is one recorded survey request.
type Run struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Request   json.RawMessage `json:"request"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Kind   string `json:"kind,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for survey run history.
type Store interface {
	// SaveRun records one request/result pair and returns the stored run.
	SaveRun(ctx context.Context, kind string, request, result any) (*Run, error)
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs the Store selected by configuration.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.Path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// marshalRun encodes request and result payloads for storage.
func marshalRun(request, result any) ([]byte, []byte, error) {
	req, err := json.Marshal(request)
	if err != nil {
		return nil, nil, eris.Wrap(err, "store: marshal request")
	}
	res, err := json.Marshal(result)
	if err != nil {
		return nil, nil, eris.Wrap(err, "store: marshal result")
	}
	return req, res, nil
}
