package llm

import (
	"context"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

// Middleware decorates a Client to inject cross-cutting concerns
// (rate limiting, logging, usage accounting).
type Middleware func(llmclient.Client) llmclient.Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.Client, mws ...Middleware) llmclient.Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		out = mws[i](out)
	}
	return out
}

// RateLimit paces calls per model identifier at rps with the given burst.
// If rps <= 0, the limiter is disabled.
func RateLimit(rps float64, burst int) Middleware {
	return func(next llmclient.Client) llmclient.Client {
		rl := newModelLimiter(rps, burst) // nil when disabled
		if rl == nil {
			return next
		}
		return &rateLimited{next: next, rl: rl}
	}
}

type rateLimited struct {
	next llmclient.Client
	rl   *modelLimiter
}

func (c *rateLimited) Name() string { return c.next.Name() }

func (c *rateLimited) Close() error {
	c.rl.Stop()
	return c.next.Close()
}

func (c *rateLimited) Generate(ctx context.Context, prompt string, cfg llmclient.GenerationConfig, cand llmclient.ModelCandidate) (llmclient.RawModelResponse, error) {
	if err := c.rl.Acquire(ctx, llmclient.NormalizeModelName(cand.Identifier)); err != nil {
		return llmclient.RawModelResponse{}, llmclient.NewTransportError(cand.Identifier, err)
	}
	return c.next.Generate(ctx, prompt, cfg, cand)
}
