package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

// WithLogging logs prompt size, latency and failures of every attempt.
// Prompt text is never logged. A nil logger disables the middleware.
func WithLogging(logger *zap.Logger) Middleware {
	return func(next llmclient.Client) llmclient.Client {
		if logger == nil {
			return next
		}
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next llmclient.Client
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Generate(ctx context.Context, prompt string, cfg llmclient.GenerationConfig, cand llmclient.ModelCandidate) (llmclient.RawModelResponse, error) {
	start := time.Now()
	resp, err := l.next.Generate(ctx, prompt, cfg, cand)
	fields := []zap.Field{
		zap.String("model", cand.Identifier),
		zap.String("source", string(cand.Source)),
		zap.Int("prompt_bytes", len(prompt)),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		l.log.Warn("llm attempt failed", append(fields, zap.Error(err))...)
		return resp, err
	}
	l.log.Debug("llm attempt", append(fields, zap.Int("response_bytes", len(resp.Text)))...)
	return resp, nil
}
