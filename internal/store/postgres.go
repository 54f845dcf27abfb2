package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/landserv/survey-cli/internal/db"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS survey_runs (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	request    JSONB NOT NULL,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_survey_runs_kind ON survey_runs(kind);
CREATE INDEX IF NOT EXISTS idx_survey_runs_created_at ON survey_runs(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, kind string, request, result any) (*Run, error) {
	req, res, err := marshalRun(request, result)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:        uuid.New().String(),
		Kind:      kind,
		Request:   req,
		Result:    res,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO survey_runs (id, kind, request, result, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Kind, req, res, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}
	return run, nil
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, kind, request, result, created_at FROM survey_runs WHERE id = $1`, id,
	).Scan(&run.ID, &run.Kind, &run.Request, &run.Result, &run.CreatedAt)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", id)
	}
	return &run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := `SELECT id, kind, request, result, created_at FROM survey_runs`
	var args []any
	if filter.Kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, filter.Kind)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filter.Offset)
	switch len(args) {
	case 2:
		query += ` LIMIT $1 OFFSET $2`
	case 3:
		query += ` LIMIT $2 OFFSET $3`
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Kind, &run.Request, &run.Result, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate runs")
	}
	return runs, nil
}
