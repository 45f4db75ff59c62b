package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/config"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/repository/usage"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

// Backend overrides the remote model service. Nil fields use Gemini.
type Backend struct {
	Client llmclient.Client
	Lister llmclient.ModelLister
}

// Pipeline is the wired analysis call chain shared by the CLI and the server.
type Pipeline struct {
	Client   llmclient.Client
	Resolver *llm.Resolver
	Analyzer *assessment.Analyzer
	Usage    usage.Store
}

// NewPipeline wires the generation client, middleware, resolver and analyzer.
// Without a Backend the credential is required and a Gemini client is built.
func NewPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger, backend *Backend) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var b Backend
	if backend != nil {
		b = *backend
	}
	if b.Client == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		gemini, err := llmclient.NewGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			return nil, &assessment.ConfigurationError{Reason: "gemini client", Err: err}
		}
		b.Client = gemini
		if b.Lister == nil {
			b.Lister = gemini
		}
	}

	usageStore, err := usage.Open(usage.Options{
		PostgresDSN: cfg.Usage.PostgresDSN,
		LedgerPath:  cfg.Usage.LedgerPath,
		Logger:      logger,
	})
	if err != nil {
		logger.Warn("usage ledger disabled", zap.Error(err))
		usageStore = nil
	}
	var sink llm.UsageSink
	if usageStore != nil {
		sink = usageStore
	}

	client := llm.Wrap(b.Client,
		llm.WithLogging(logger),
		llm.WithUsage(sink, logger),
		llm.RateLimit(cfg.RPS, cfg.Burst),
	)
	resolver := llm.NewResolver(b.Lister, llm.ResolverOptions{
		Fallback: cfg.FallbackModel,
		Families: cfg.ModelFamilies,
		MaxLive:  cfg.MaxCandidates,
		Logger:   logger,
	})
	analyzer, err := assessment.NewAnalyzer(client, resolver, assessment.Options{
		Generation:      cfg.Generation,
		MinConcernChars: cfg.MinConcernChars,
		Logger:          logger,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Pipeline{Client: client, Resolver: resolver, Analyzer: analyzer, Usage: usageStore}, nil
}

func (p *Pipeline) Close() error {
	var errs []error
	if p.Client != nil {
		errs = append(errs, p.Client.Close())
	}
	if p.Usage != nil {
		errs = append(errs, p.Usage.Close())
	}
	return errors.Join(errs...)
}
