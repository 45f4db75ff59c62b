package assessment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/util/jsonutil"
)

// CandidateResolver yields the ordered models to try for one analysis.
type CandidateResolver interface {
	Resolve(ctx context.Context, capability llm.Capability) ([]llmclient.ModelCandidate, error)
}

// Options tunes an Analyzer. Zero values select defaults.
type Options struct {
	Generation      llmclient.GenerationConfig
	MinConcernChars int
	Logger          *zap.Logger
}

// Analyzer runs the analysis call chain: validate, build prompt, try
// candidates in order, extract, normalize. It holds no per-request state.
type Analyzer struct {
	client   llmclient.Client
	resolver CandidateResolver
	gen      llmclient.GenerationConfig
	minChars int
	log      *zap.Logger
}

// Outcome is a completed analysis.
type Outcome struct {
	Result    Result                   `json:"result"`
	Candidate llmclient.ModelCandidate `json:"candidate"`
	Attempts  int                      `json:"attempts"`
}

func NewAnalyzer(client llmclient.Client, resolver CandidateResolver, opts Options) (*Analyzer, error) {
	if client == nil {
		return nil, &ConfigurationError{Reason: "generation client is not configured"}
	}
	if resolver == nil {
		return nil, &ConfigurationError{Reason: "model resolver is not configured"}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	minChars := opts.MinConcernChars
	if minChars <= 0 {
		minChars = DefaultMinConcernChars
	}
	return &Analyzer{
		client:   client,
		resolver: resolver,
		gen:      opts.Generation.WithDefaults(),
		minChars: minChars,
		log:      logger,
	}, nil
}

// MinConcernChars is the minimum concern length this analyzer accepts.
func (a *Analyzer) MinConcernChars() int { return a.minChars }

// Analyze returns the canonical result for req. Every failure is one of the
// typed errors in this package; per-candidate transport failures are
// absorbed and only surface inside ModelUnavailableError.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (Outcome, error) {
	if err := req.Validate(a.minChars); err != nil {
		return Outcome{}, err
	}
	prompt, err := BuildPrompt(req)
	if err != nil {
		return Outcome{}, &ConfigurationError{Reason: "prompt template", Err: err}
	}
	candidates, err := a.resolver.Resolve(ctx, llm.CapabilityGeneral)
	if err != nil {
		return Outcome{}, &ConfigurationError{Reason: "model candidates", Err: err}
	}

	var (
		attempts []string
		last     error
	)
	for _, cand := range candidates {
		attempts = append(attempts, cand.Identifier)
		start := time.Now()
		resp, err := a.client.Generate(ctx, prompt, a.gen, cand)
		if err != nil {
			last = err
			a.log.Warn("candidate failed",
				zap.String("model", cand.Identifier),
				zap.String("source", string(cand.Source)),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		res, err := a.decode(cand, resp.Text)
		if err != nil {
			a.log.Warn("unusable model reply",
				zap.String("model", cand.Identifier),
				zap.String("kind", string(Classify(err))),
				zap.Int("response_bytes", len(resp.Text)))
			return Outcome{}, err
		}
		a.log.Info("analysis complete",
			zap.String("model", cand.Identifier),
			zap.Int("attempts", len(attempts)),
			zap.String("risk_level", string(res.RiskLevel)),
			zap.Bool("is_emergency", res.IsEmergency))
		return Outcome{Result: res, Candidate: cand, Attempts: len(attempts)}, nil
	}
	return Outcome{}, &ModelUnavailableError{Attempts: attempts, Last: last}
}

func (a *Analyzer) decode(cand llmclient.ModelCandidate, text string) (Result, error) {
	extracted := jsonutil.ExtractObject(text)
	if strings.TrimSpace(extracted) == "" {
		return Result{}, &ExtractionError{Model: cand.Identifier}
	}
	res, err := ParseAndNormalize(extracted)
	if err != nil {
		if mal, ok := err.(*MalformedResponseError); ok {
			mal.Model = cand.Identifier
		}
		return Result{}, err
	}
	return res, nil
}
