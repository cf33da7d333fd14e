// Package archive persists per-item pipeline results into Postgres for
// operator review. The archive is optional; it is wired only when a DSN is
// configured and its failures are never fatal to a run.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

// Open connects to Postgres using the lib/pq driver and verifies the
// connection with a bounded ping, so a bad DSN surfaces at wiring time
// instead of on the first insert.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// PostgresArchive stores results in the pipeline_results table.
type PostgresArchive struct {
	db *sql.DB
}

var _ ports.ResultArchive = (*PostgresArchive)(nil)

// NewPostgresArchive wires a sql.DB implementation.
func NewPostgresArchive(db *sql.DB) *PostgresArchive {
	return &PostgresArchive{db: db}
}

// SaveResult inserts one row per processed item.
func (a *PostgresArchive) SaveResult(ctx context.Context, runID string, result domain.PipelineResult) error {
	if a.db == nil {
		return nil
	}

	records, err := json.Marshal(result.Records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	outcomes, err := json.Marshal(result.Outcomes)
	if err != nil {
		return fmt.Errorf("encode outcomes: %w", err)
	}

	classifications := make([]string, 0, len(result.Classifications))
	for _, label := range result.Classifications {
		classifications = append(classifications, string(label))
	}

	query, args, err := sq.Insert("pipeline_results").
		Columns("run_id", "item_id", "classifications", "records", "outcomes", "errors").
		Values(runID, result.ItemID, pq.StringArray(classifications), records, outcomes, pq.StringArray(result.Errors)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}
