package llmtool

// PromptPreset holds reusable rules for structured prompts.
type PromptPreset struct {
	Rules []string
}

// ApplyPresets prepends preset rules to a structured prompt spec.
func ApplyPresets(spec StructuredPromptSpec, presets ...PromptPreset) StructuredPromptSpec {
	if len(presets) == 0 {
		return spec
	}
	var rules []string
	for _, p := range presets {
		rules = append(rules, p.Rules...)
	}
	spec.Rules = append(rules, spec.Rules...)
	return spec
}

// PresetSingleJSONObject asks for exactly one JSON object and nothing else.
func PresetSingleJSONObject() PromptPreset {
	return PromptPreset{
		Rules: []string{
			"Respond with a single JSON object that follows OUTPUT_SCHEMA exactly.",
			"Use only the listed values for enumerated fields.",
		},
	}
}
