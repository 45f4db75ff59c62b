package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

// UsageRecord describes one generation attempt. It never carries prompt text.
type UsageRecord struct {
	Day      string
	Model    string
	Source   llmclient.ModelSource
	Tokens   int64
	Failed   bool
	Duration time.Duration
	At       time.Time
}

// UsageSink persists usage records.
type UsageSink interface {
	Record(ctx context.Context, rec UsageRecord) error
}

// WithUsage records every attempt to sink. Sink failures are logged and
// otherwise ignored so accounting can never fail an analysis.
func WithUsage(sink UsageSink, logger *zap.Logger) Middleware {
	return func(next llmclient.Client) llmclient.Client {
		if sink == nil {
			return next
		}
		if logger == nil {
			logger = zap.NewNop()
		}
		return &usageClient{next: next, sink: sink, log: logger}
	}
}

type usageClient struct {
	next llmclient.Client
	sink UsageSink
	log  *zap.Logger
}

func (u *usageClient) Name() string { return u.next.Name() }
func (u *usageClient) Close() error { return u.next.Close() }

func (u *usageClient) Generate(ctx context.Context, prompt string, cfg llmclient.GenerationConfig, cand llmclient.ModelCandidate) (llmclient.RawModelResponse, error) {
	start := time.Now()
	resp, err := u.next.Generate(ctx, prompt, cfg, cand)
	now := time.Now().UTC()
	rec := UsageRecord{
		Day:      now.Format("2006-01-02"),
		Model:    llmclient.NormalizeModelName(cand.Identifier),
		Source:   cand.Source,
		Tokens:   int64(llmclient.EstimateTokens(prompt) + llmclient.EstimateTokens(resp.Text)),
		Failed:   err != nil,
		Duration: time.Since(start),
		At:       now,
	}
	if rec.Model == "" {
		rec.Model = "unknown"
	}
	// Detach from request cancellation; the attempt already happened.
	if serr := u.sink.Record(context.WithoutCancel(ctx), rec); serr != nil {
		u.log.Warn("usage ledger write failed", zap.String("model", rec.Model), zap.Error(serr))
	}
	return resp, err
}
