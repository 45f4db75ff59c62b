package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/config"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.FromEnv()
	cfg.APIKey = ""
	cfg.Usage.PostgresDSN = ""
	cfg.Usage.LedgerPath = filepath.Join(t.TempDir(), "usage.json")
	cfg.Report.Enabled = false
	return cfg
}

func TestNewPipeline_RequiresCredentialWithoutBackend(t *testing.T) {
	_, err := NewPipeline(context.Background(), testConfig(t), nil, nil)
	assert.Equal(t, assessment.KindConfiguration, assessment.Classify(err))
}

func TestNewPipeline_WithFakeBackend(t *testing.T) {
	cfg := testConfig(t)
	fake := llmclient.NewFakeClient().Reply(cfg.FallbackModel, `{"risk_level":"LOW"}`)
	p, err := NewPipeline(context.Background(), cfg, nil, &Backend{
		Client: fake,
		Lister: llmclient.StaticLister{Err: errors.New("offline")},
	})
	require.NoError(t, err)
	defer p.Close()

	out, err := p.Analyzer.Analyze(context.Background(),
		assessment.NewRequest("Persistent knee pain for two weeks after running", nil))
	require.NoError(t, err)
	assert.Equal(t, assessment.RiskLow, out.Result.RiskLevel)

	day, err := p.Usage.Day(context.Background(), time.Now().UTC().Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), day.Requests)
}

func TestNew_BuildsServer(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg, nil, &Backend{Client: llmclient.NewFakeClient()})
	require.NoError(t, err)
	assert.Equal(t, cfg.Port, a.server.Addr())
	require.NoError(t, a.Shutdown(context.Background()))
}
