package llmtool

import (
	"bytes"
	"fmt"
	"strings"
)

// StructuredPromptSpec defines the sections of a structured prompt.
// Empty sections are omitted; section order is fixed.
type StructuredPromptSpec struct {
	Role         string
	Context      string
	Input        string
	InputLabel   string
	OutputSchema string
	Rules        []string
	OutputFormat string
}

// RenderStructuredPrompt renders spec deterministically: identical specs
// always produce byte-identical prompts.
func RenderStructuredPrompt(spec StructuredPromptSpec) (string, error) {
	if strings.TrimSpace(spec.Role) == "" {
		return "", fmt.Errorf("llmtool: role is empty")
	}
	if strings.TrimSpace(spec.OutputSchema) == "" {
		return "", fmt.Errorf("llmtool: output schema is empty")
	}
	label := strings.TrimSpace(spec.InputLabel)
	if label == "" {
		label = "INPUT"
	}

	var buf bytes.Buffer
	writeSection(&buf, "ROLE", spec.Role)
	writeSection(&buf, "CONTEXT", spec.Context)
	writeSection(&buf, label, spec.Input)
	writeSection(&buf, "OUTPUT_SCHEMA", spec.OutputSchema)
	writeSection(&buf, "GUIDELINES", formatList(spec.Rules))
	writeSection(&buf, "OUTPUT_FORMAT", spec.OutputFormat)
	return strings.TrimSpace(buf.String()) + "\n", nil
}

func formatList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
