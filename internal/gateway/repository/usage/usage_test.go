package usage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

func rec(model string, tokens int64, failed bool) llm.UsageRecord {
	return llm.UsageRecord{
		Day:    "2025-03-01",
		Model:  model,
		Source: llmclient.SourceLiveCatalog,
		Tokens: tokens,
		Failed: failed,
		At:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFileStore_AggregatesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "usage.json")
	s := NewFileStore(path, nil)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, rec("gemini-2.5-flash", 100, false)))
	require.NoError(t, s.Record(ctx, rec("gemini-2.5-flash", 50, true)))
	require.NoError(t, s.Record(ctx, rec("gemini-2.5-pro", 10, false)))

	d, err := NewFileStore(path, nil).Day(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.Requests)
	assert.Equal(t, int64(160), d.Tokens)
	assert.Equal(t, int64(1), d.Errors)
	assert.Equal(t, ModelStat{Requests: 2, Tokens: 150, Errors: 1}, d.Models["gemini-2.5-flash"])

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var f ledgerFile
	require.NoError(t, json.Unmarshal(raw, &f))
	assert.NotEmpty(t, f.UpdatedAt)
	assert.Contains(t, f.Days, "2025-03-01")
}

func TestFileStore_CorruptFileMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "usage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	core, logs := observer.New(zap.WarnLevel)
	s := NewFileStore(path, zap.New(core))
	_, err := s.Day(context.Background(), "2025-03-01")
	assert.Error(t, err)

	require.NoError(t, s.Record(context.Background(), rec("m", 1, false)))
	d, err := s.Day(context.Background(), "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Requests)

	aside, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, aside, 1)
	kept, err := os.ReadFile(aside[0])
	require.NoError(t, err)
	assert.Equal(t, "not json", string(kept))
	assert.Equal(t, 1, logs.FilterMessage("usage ledger corrupt, starting a new one").Len())
}

func TestFileStore_UnknownDay(t *testing.T) {
	d, err := NewFileStore(filepath.Join(t.TempDir(), "u.json"), nil).Day(context.Background(), "1999-01-01")
	require.NoError(t, err)
	assert.Zero(t, d.Requests)
	assert.NotNil(t, d.Models)
}

func TestOpen(t *testing.T) {
	s, err := Open(Options{})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = Open(Options{LedgerPath: filepath.Join(t.TempDir(), "u.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
}

func TestFileStore_AsMiddlewareSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "u.json")
	store := NewFileStore(path, nil)
	fake := llmclient.NewFakeClient().Reply("gemini-2.5-flash", `{}`)
	cli := llm.Wrap(fake, llm.WithUsage(store, nil))

	_, err := cli.Generate(context.Background(), "prompt text", llmclient.DefaultGenerationConfig(),
		llmclient.ModelCandidate{Identifier: "gemini-2.5-flash", Source: llmclient.SourceStaticFallback})
	require.NoError(t, err)

	d, err := store.Day(context.Background(), time.Now().UTC().Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Models["gemini-2.5-flash"].Requests)
}
