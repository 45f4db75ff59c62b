package llmclient

import (
	"context"
	"strings"

	genai "google.golang.org/genai"
)

const generateContentAction = "generateContent"

// GeminiClient is a thin wrapper around the official genai client.
// It only focuses on the API call itself. Cross-cutting concerns
// (rate limiting, logging, usage) are applied via middleware.
type GeminiClient struct {
	cli *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli}, nil
}

func (g *GeminiClient) Name() string { return "Gemini" }
func (g *GeminiClient) Close() error { return nil }

// Generate sends the prompt to cand with the given sampling options and
// returns the concatenated text parts of the first response candidate.
// Any failure from the service is reported as a TransportError.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, cfg GenerationConfig, cand ModelCandidate) (RawModelResponse, error) {
	cfg = cfg.WithDefaults()
	model := NormalizeModelName(cand.Identifier)
	resp, err := g.cli.Models.GenerateContent(ctx, model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     cfg.Temperature,
			TopP:            genai.Ptr(cfg.TopP),
			TopK:            genai.Ptr(float32(cfg.TopK)),
			MaxOutputTokens: int32(cfg.MaxOutputTokens),
		},
	)
	if err != nil {
		return RawModelResponse{}, NewTransportError(model, err)
	}
	return RawModelResponse{Text: responseText(resp), Candidate: cand}, nil
}

// ListModels walks the live catalog and returns identifiers that support
// content generation, in catalog order.
func (g *GeminiClient) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	for m, err := range g.cli.Models.All(ctx) {
		if err != nil {
			return nil, NewTransportError("", err)
		}
		if m == nil || !supportsGenerate(m.SupportedActions) {
			continue
		}
		if name := NormalizeModelName(m.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func supportsGenerate(actions []string) bool {
	// Older catalog entries omit actions entirely.
	if len(actions) == 0 {
		return true
	}
	for _, a := range actions {
		if strings.EqualFold(a, generateContentAction) {
			return true
		}
	}
	return false
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
