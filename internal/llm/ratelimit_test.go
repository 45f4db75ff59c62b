package llm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

// spyingClient records when requests reach the inner client.
type spyingClient struct {
	next  llmclient.Client
	mu    sync.Mutex
	times []time.Time
}

func (s *spyingClient) Name() string { return s.next.Name() }
func (s *spyingClient) Close() error { return s.next.Close() }
func (s *spyingClient) Generate(ctx context.Context, prompt string, cfg llmclient.GenerationConfig, cand llmclient.ModelCandidate) (llmclient.RawModelResponse, error) {
	s.mu.Lock()
	s.times = append(s.times, time.Now())
	s.mu.Unlock()
	return s.next.Generate(ctx, prompt, cfg, cand)
}

var rateCand = llmclient.ModelCandidate{Identifier: "gemini-2.5-flash", Source: llmclient.SourceStaticFallback}

func generate(t *testing.T, cli llmclient.Client) {
	t.Helper()
	_, err := cli.Generate(context.Background(), "p", llmclient.DefaultGenerationConfig(), rateCand)
	require.NoError(t, err)
}

func TestRate_RPS_2PerSecond_Burst1_Spacing(t *testing.T) {
	spy := &spyingClient{next: llmclient.NewFakeClient().ReplyAll(`{}`)}
	cli := Wrap(spy, RateLimit(2, 1))
	t.Cleanup(func() { _ = cli.Close() })

	start := time.Now()
	generate(t, cli)
	generate(t, cli)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 450*time.Millisecond, "expected throttling")
	assert.Len(t, spy.times, 2)
}

func TestRate_RPS_2PerSecond_Burst2_FirstTwoImmediate(t *testing.T) {
	cli := RateLimit(2, 2)(llmclient.NewFakeClient().ReplyAll(`{}`))
	t.Cleanup(func() { _ = cli.Close() })

	start := time.Now()
	generate(t, cli)
	generate(t, cli)
	firstTwo := time.Since(start)
	generate(t, cli)
	third := time.Since(start) - firstTwo

	assert.Less(t, firstTwo, 150*time.Millisecond, "burst should pass immediately")
	assert.GreaterOrEqual(t, third, 300*time.Millisecond, "third call should wait for a refill")
}

func TestRate_StoppedLimiterRejects(t *testing.T) {
	l := newModelLimiter(1, 1)
	require.NotNil(t, l)
	l.Stop()
	l.Stop()
	assert.ErrorIs(t, l.Acquire(context.Background(), "gemini-2.5-flash"), context.Canceled)

	var none *modelLimiter
	assert.NoError(t, none.Acquire(context.Background(), "gemini-2.5-flash"))
	assert.Nil(t, newModelLimiter(0, 3))
}

func TestRate_ModelsHaveSeparateBuckets(t *testing.T) {
	fake := llmclient.NewFakeClient().ReplyAll(`{}`)
	cli := Wrap(fake, RateLimit(0.5, 1))
	t.Cleanup(func() { _ = cli.Close() })

	start := time.Now()
	generate(t, cli)
	_, err := cli.Generate(context.Background(), "p", llmclient.DefaultGenerationConfig(),
		llmclient.ModelCandidate{Identifier: "models/gemini-2.5-pro", Source: llmclient.SourceLiveCatalog})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond, "fallback model must not wait on the first")
}

func TestRate_RefillsFromElapsedTime(t *testing.T) {
	l := newModelLimiter(1, 2)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.Zero(t, l.reserve("m"))
	assert.Zero(t, l.reserve("m"))
	assert.Equal(t, time.Second, l.reserve("m"))

	now = now.Add(10 * time.Second)
	assert.Zero(t, l.reserve("m"))
	assert.Zero(t, l.reserve("m"))
	assert.Greater(t, l.reserve("m"), time.Duration(0))
}

func TestRate_CanceledWaitReturnsToken(t *testing.T) {
	l := newModelLimiter(0.1, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	require.NoError(t, l.Acquire(context.Background(), "m"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Acquire(ctx, "m"), context.DeadlineExceeded)

	now = now.Add(10 * time.Second)
	assert.Zero(t, l.reserve("m"))
}
