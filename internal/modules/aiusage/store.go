package aiusage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS generation_log (
	id          UUID PRIMARY KEY,
	kind        TEXT NOT NULL,
	provider    TEXT NOT NULL,
	attempts    INT NOT NULL,
	failed      TEXT NOT NULL DEFAULT '',
	fallback    BOOLEAN NOT NULL,
	duration_ms BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Store handles generation_log persistence.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by the given database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the generation_log table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure generation_log: %w", err)
	}
	return nil
}

// Insert appends one record. Failed providers are stored comma separated.
func (s *Store) Insert(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_log (id, kind, provider, attempts, failed, fallback, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID.String(), r.Kind, r.Provider, r.Attempts,
		strings.Join(r.Failed, ","), r.Fallback, r.DurationMs, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert generation_log: %w", err)
	}
	return nil
}

// Recent returns the newest records first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, provider, attempts, failed, fallback, duration_ms, created_at
		FROM generation_log
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query generation_log: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var (
			r      Record
			id     string
			failed string
		)
		if err := rows.Scan(&id, &r.Kind, &r.Provider, &r.Attempts, &failed, &r.Fallback, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan generation_log: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse record id %q: %w", id, err)
		}
		r.Failed = splitFailed(failed)
		out = append(out, r)
	}
	return out, rows.Err()
}

func splitFailed(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
