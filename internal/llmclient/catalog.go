package llmclient

import "strings"

// ModelSource records where a candidate identifier came from.
type ModelSource string

const (
	SourceLiveCatalog    ModelSource = "live_catalog"
	SourceStaticFallback ModelSource = "static_fallback"
)

// ModelCandidate is one remote model identifier eligible for a generation attempt.
type ModelCandidate struct {
	Identifier string      `json:"identifier"`
	Source     ModelSource `json:"source"`
}

func (c ModelCandidate) String() string {
	return c.Identifier + " (" + string(c.Source) + ")"
}

// GenerationConfig carries the sampling options sent with every call.
// Temperature is a pointer so an explicit 0 (greedy sampling) survives
// WithDefaults.
type GenerationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty"`
	TopP            float32  `json:"top_p"`
	TopK            int      `json:"top_k"`
	MaxOutputTokens int      `json:"max_output_tokens"`
}

const (
	DefaultTemperature     float32 = 0.7
	DefaultTopP            float32 = 0.95
	DefaultTopK                    = 40
	DefaultMaxOutputTokens         = 2048
)

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     Temperature(DefaultTemperature),
		TopP:            DefaultTopP,
		TopK:            DefaultTopK,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// Temperature returns a fresh pointer to v for GenerationConfig.
func Temperature(v float32) *float32 { return &v }

// WithDefaults fills unset options from DefaultGenerationConfig. A nil or
// negative temperature is unset; zero is a valid value there. The other options treat zero as unset.
func (c GenerationConfig) WithDefaults() GenerationConfig {
	d := DefaultGenerationConfig()
	if c.Temperature == nil || *c.Temperature < 0 {
		c.Temperature = d.Temperature
	} else {
		c.Temperature = Temperature(*c.Temperature)
	}
	if c.TopP <= 0 || c.TopP > 1 {
		c.TopP = d.TopP
	}
	if c.TopK <= 0 {
		c.TopK = d.TopK
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = d.MaxOutputTokens
	}
	return c
}

// NormalizeModelName strips the "models/" resource prefix the catalog returns.
func NormalizeModelName(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimPrefix(name, "models/")
}
