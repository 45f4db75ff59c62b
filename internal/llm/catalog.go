package llm

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

// Capability is the kind of work a candidate model must be able to do.
type Capability string

const CapabilityGeneral Capability = "general"

// DefaultFallbackModel is known to be broadly available on the Gemini API.
const DefaultFallbackModel = "gemini-2.5-flash"

var (
	// DefaultFamilies are the identifier markers of general-purpose models.
	DefaultFamilies = []string{"flash", "pro"}

	// excludeMarkers drop specialised variants that share a family token
	// but cannot serve plain text generation.
	excludeMarkers = []string{"embedding", "tts", "image", "audio", "live", "vision", "aqa"}

	ErrNoFallbackModel = errors.New("llm: no fallback model configured")
)

// ResolverOptions configures a Resolver. Zero values select defaults.
type ResolverOptions struct {
	Fallback string
	Families []string
	// MaxLive caps how many live catalog matches are tried; <= 0 means no cap.
	MaxLive int
	Logger  *zap.Logger
}

// Resolver turns a capability hint into an ordered, non-empty candidate list.
// It has no cache; every call queries the catalog again.
type Resolver struct {
	lister   llmclient.ModelLister
	fallback string
	families []string
	maxLive  int
	log      *zap.Logger
}

func NewResolver(lister llmclient.ModelLister, opts ResolverOptions) *Resolver {
	families := normalizeMarkers(opts.Families)
	if len(families) == 0 {
		families = append([]string(nil), DefaultFamilies...)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		lister:   lister,
		fallback: llmclient.NormalizeModelName(opts.Fallback),
		families: families,
		maxLive:  opts.MaxLive,
		log:      logger,
	}
}

// Resolve returns live catalog matches in catalog order followed by the
// static fallback. When the catalog is unreachable or nothing matches, the
// result is exactly the fallback candidate. Only a missing fallback errors.
func (r *Resolver) Resolve(ctx context.Context, capability Capability) ([]llmclient.ModelCandidate, error) {
	if r.fallback == "" {
		return nil, ErrNoFallbackModel
	}
	fallback := llmclient.ModelCandidate{Identifier: r.fallback, Source: llmclient.SourceStaticFallback}

	if r.lister == nil {
		return []llmclient.ModelCandidate{fallback}, nil
	}
	names, err := r.lister.ListModels(ctx)
	if err != nil {
		r.log.Warn("model catalog unavailable, using fallback",
			zap.String("capability", string(capability)),
			zap.String("fallback", r.fallback),
			zap.Error(err))
		return []llmclient.ModelCandidate{fallback}, nil
	}

	out := make([]llmclient.ModelCandidate, 0, len(names)+1)
	seen := map[string]struct{}{}
	for _, name := range names {
		name = llmclient.NormalizeModelName(name)
		if name == "" || !r.matches(name) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		if r.maxLive > 0 && len(out) >= r.maxLive {
			break
		}
		seen[name] = struct{}{}
		out = append(out, llmclient.ModelCandidate{Identifier: name, Source: llmclient.SourceLiveCatalog})
	}
	if len(out) == 0 {
		r.log.Info("no catalog model matched, using fallback",
			zap.Int("catalog_size", len(names)),
			zap.Strings("families", r.families))
		return []llmclient.ModelCandidate{fallback}, nil
	}
	if _, ok := seen[r.fallback]; !ok {
		out = append(out, fallback)
	}
	return out, nil
}

func (r *Resolver) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range excludeMarkers {
		if strings.Contains(lower, m) {
			return false
		}
	}
	for _, fam := range r.families {
		if strings.Contains(lower, fam) {
			return true
		}
	}
	return false
}

func normalizeMarkers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, m := range in {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}
