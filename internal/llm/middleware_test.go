package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

type tagged struct {
	next  llmclient.Client
	tag   string
	order *[]string
}

func (t *tagged) Name() string { return t.next.Name() }
func (t *tagged) Close() error { return t.next.Close() }
func (t *tagged) Generate(ctx context.Context, p string, cfg llmclient.GenerationConfig, c llmclient.ModelCandidate) (llmclient.RawModelResponse, error) {
	*t.order = append(*t.order, t.tag)
	return t.next.Generate(ctx, p, cfg, c)
}

func tag(name string, order *[]string) Middleware {
	return func(next llmclient.Client) llmclient.Client { return &tagged{next: next, tag: name, order: order} }
}

var flash = llmclient.ModelCandidate{Identifier: "gemini-2.5-flash", Source: llmclient.SourceStaticFallback}

func TestWrap_LeftToRight(t *testing.T) {
	var order []string
	cli := Wrap(llmclient.NewFakeClient().ReplyAll("{}"), tag("A", &order), nil, tag("B", &order))
	_, err := cli.Generate(context.Background(), "p", llmclient.GenerationConfig{}, flash)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, order)
}

func TestRateLimit_DisabledReturnsNext(t *testing.T) {
	inner := llmclient.NewFakeClient()
	assert.Same(t, inner, RateLimit(0, 0)(inner))
}

func TestRateLimit_CanceledContextIsTransportError(t *testing.T) {
	cli := RateLimit(0.001, 1)(llmclient.NewFakeClient().ReplyAll("{}"))
	defer cli.Close()

	_, err := cli.Generate(context.Background(), "p", llmclient.GenerationConfig{}, flash)
	require.NoError(t, err, "burst token available")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = cli.Generate(ctx, "p", llmclient.GenerationConfig{}, flash)
	assert.True(t, llmclient.IsTransportError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithLogging_NeverLogsPrompt(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fake := llmclient.NewFakeClient().Reply("gemini-2.5-flash", "{}").Fail("gemini-2.5-pro", errors.New("403"))
	cli := WithLogging(zap.New(core))(fake)

	_, _ = cli.Generate(context.Background(), "secret symptoms", llmclient.GenerationConfig{}, flash)
	_, _ = cli.Generate(context.Background(), "secret symptoms", llmclient.GenerationConfig{}, llmclient.ModelCandidate{Identifier: "gemini-2.5-pro"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	for _, e := range entries {
		for k, v := range e.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "secret", "field %s leaked prompt", k)
			}
		}
	}
}

type memSink struct {
	mu   sync.Mutex
	recs []UsageRecord
	err  error
}

func (m *memSink) Record(_ context.Context, rec UsageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return m.err
}

func TestWithUsage_RecordsEveryAttempt(t *testing.T) {
	sink := &memSink{err: errors.New("disk full")}
	fake := llmclient.NewFakeClient().Reply("gemini-2.5-flash", `{"a":1}`)
	cli := WithUsage(sink, nil)(fake)

	_, err := cli.Generate(context.Background(), "one two", llmclient.GenerationConfig{}, flash)
	require.NoError(t, err, "sink failure must not fail the call")
	_, err = cli.Generate(context.Background(), "one two", llmclient.GenerationConfig{}, llmclient.ModelCandidate{Identifier: "models/missing"})
	require.Error(t, err)

	require.Len(t, sink.recs, 2)
	assert.Equal(t, "gemini-2.5-flash", sink.recs[0].Model)
	assert.False(t, sink.recs[0].Failed)
	assert.Positive(t, sink.recs[0].Tokens)
	assert.Equal(t, "missing", sink.recs[1].Model)
	assert.True(t, sink.recs[1].Failed)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), sink.recs[0].Day)
}

func TestWithUsage_NilSinkIsNoop(t *testing.T) {
	inner := llmclient.NewFakeClient()
	assert.Same(t, inner, WithUsage(nil, nil)(inner))
}
