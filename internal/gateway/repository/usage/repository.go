package usage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
)

// DaySummary aggregates the generation attempts of one UTC day.
type DaySummary struct {
	Requests int64                `json:"requests"`
	Tokens   int64                `json:"tokens"`
	Errors   int64                `json:"errors"`
	Models   map[string]ModelStat `json:"models"`
}

type ModelStat struct {
	Requests int64 `json:"requests"`
	Tokens   int64 `json:"tokens"`
	Errors   int64 `json:"errors"`
}

// Store is a usage sink that can also report what it has recorded.
type Store interface {
	llm.UsageSink
	Day(ctx context.Context, day string) (DaySummary, error)
	Close() error
}

// Options selects a backend: Postgres when PostgresDSN is set, else a JSON
// ledger file when LedgerPath is set.
type Options struct {
	PostgresDSN string
	LedgerPath  string
	Logger      *zap.Logger
}

// Open returns the configured store, or nil when usage accounting is off.
func Open(opts Options) (Store, error) {
	if dsn := strings.TrimSpace(opts.PostgresDSN); dsn != "" {
		s, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("open usage postgres: %w", err)
		}
		return s, nil
	}
	if path := strings.TrimSpace(opts.LedgerPath); path != "" {
		return NewFileStore(path, opts.Logger), nil
	}
	return nil, nil
}

func (d *DaySummary) add(rec llm.UsageRecord) {
	if d.Models == nil {
		d.Models = map[string]ModelStat{}
	}
	d.Requests++
	d.Tokens += rec.Tokens
	m := d.Models[rec.Model]
	m.Requests++
	m.Tokens += rec.Tokens
	if rec.Failed {
		d.Errors++
		m.Errors++
	}
	d.Models[rec.Model] = m
}
