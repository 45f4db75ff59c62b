package usage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
)

// PostgresStore appends one row per attempt to medwise_usage.
type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing handle.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS medwise_usage (
  id BIGSERIAL PRIMARY KEY,
  day TEXT NOT NULL,
  model TEXT NOT NULL,
  source TEXT NOT NULL DEFAULT '',
  tokens BIGINT NOT NULL DEFAULT 0,
  failed BOOLEAN NOT NULL DEFAULT FALSE,
  duration_ms BIGINT NOT NULL DEFAULT 0,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_medwise_usage_day ON medwise_usage (day);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Record(ctx context.Context, rec llm.UsageRecord) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO medwise_usage (day, model, source, tokens, failed, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.Day, rec.Model, string(rec.Source), rec.Tokens, rec.Failed, rec.Duration.Milliseconds(), rec.At)
	return err
}

func (s *PostgresStore) Day(ctx context.Context, day string) (DaySummary, error) {
	out := DaySummary{Models: map[string]ModelStat{}}
	if err := s.ensureSchema(ctx); err != nil {
		return out, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT model, COUNT(*), COALESCE(SUM(tokens), 0), COUNT(*) FILTER (WHERE failed)
FROM medwise_usage WHERE day = $1 GROUP BY model ORDER BY model`, day)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			model string
			m     ModelStat
		)
		if err := rows.Scan(&model, &m.Requests, &m.Tokens, &m.Errors); err != nil {
			return out, err
		}
		out.Models[model] = m
		out.Requests += m.Requests
		out.Tokens += m.Tokens
		out.Errors += m.Errors
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
