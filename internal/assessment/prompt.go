package assessment

import (
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmtool"
)

const (
	promptRole   = "You are a medical awareness assistant helping patients understand their health conditions better."
	promptSchema = "Provide a comprehensive analysis in the following JSON format:\n\n"
)

var promptGuidelines = []string{
	"Be conservative in risk assessment (safety first)",
	"Use simple language, avoid medical jargon",
	"If it sounds like an emergency, mark it clearly",
	"Always encourage professional medical consultation",
	"Provide balanced view of surgery vs alternatives",
	"Be empathetic and supportive in tone",
}

// BuildPrompt composes the analysis prompt for req. The output is a pure
// function of req and the schema table.
func BuildPrompt(req Request) (string, error) {
	spec := llmtool.StructuredPromptSpec{
		Role:         promptRole,
		InputLabel:   "USER_CONDITION_DESCRIPTION",
		Input:        req.PromptText(),
		OutputSchema: promptSchema + SchemaTemplate(),
		Rules:        promptGuidelines,
		OutputFormat: "Return only the JSON object. Omit estimated_recovery_time when no treatment timeline applies.",
	}
	spec = llmtool.ApplyPresets(spec, llmtool.PresetSingleJSONObject())
	return llmtool.RenderStructuredPrompt(spec)
}
