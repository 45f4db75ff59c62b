package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

// Analysis is what the CLI prints for one completed analysis.
type Analysis struct {
	Model        llmclient.ModelCandidate `json:"model" yaml:"model"`
	Result       assessment.Result        `json:"result" yaml:"result"`
	Presentation assessment.Presentation  `json:"presentation" yaml:"presentation"`
}

func NewAnalysis(out assessment.Outcome) Analysis {
	return Analysis{
		Model:        out.Candidate,
		Result:       out.Result,
		Presentation: assessment.Present(out.Result),
	}
}

// ValidFormat reports whether format is one of human, json or yaml.
func ValidFormat(format string) bool {
	switch format {
	case "human", "json", "yaml":
		return true
	}
	return false
}

// DisplayResults formats and writes the analysis to w.
func DisplayResults(w io.Writer, a Analysis, format string) error {
	switch format {
	case "json":
		return displayJSON(w, a)
	case "yaml":
		return displayYAML(w, a)
	case "human":
		fallthrough
	default:
		displayHuman(w, a)
	}
	return nil
}

// DisplayCandidates prints a resolved candidate list, one per line.
func DisplayCandidates(w io.Writer, cands []llmclient.ModelCandidate, format string) error {
	switch format {
	case "json":
		return writeJSON(w, cands)
	case "yaml":
		return writeYAML(w, cands)
	}
	for i, c := range cands {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, c.Identifier, color.HiBlackString("(%s)", c.Source))
	}
	return nil
}

func displayJSON(w io.Writer, a Analysis) error { return writeJSON(w, a) }

func displayYAML(w io.Writer, a Analysis) error { return writeYAML(w, a) }

func writeJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func writeYAML(w io.Writer, v any) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, a Analysis) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	r, p := a.Result, a.Presentation
	fmt.Fprintln(w)

	if p.Emergency {
		red.Fprintln(w, "EMERGENCY DETECTED")
		fmt.Fprintln(w, "   This may require immediate medical attention. Please:")
		for _, c := range p.EmergencyContacts {
			fmt.Fprintf(w, "   - Call %s: %s\n", c.Label, c.Number)
		}
		fmt.Fprintln(w, "   - Go to the nearest hospital emergency room")
		fmt.Fprintln(w)
	}

	riskColor(r.RiskLevel).Fprintf(w, "RISK ASSESSMENT: %s\n", r.RiskLevel)
	fmt.Fprintf(w, "   Urgency: %s\n\n", p.UrgencyLabel)

	white.Fprintf(w, "LIKELY CONDITION: %s\n", r.ConditionName)
	fmt.Fprintln(w, wrapText(r.SimpleExplanation, 80, "   "))
	fmt.Fprintln(w)

	cyan.Fprintln(w, "SURGERY ASSESSMENT:")
	fmt.Fprintf(w, "   Status: %s\n\n", p.SurgeryLabel)
	cyan.Fprintln(w, "RECOMMENDED CONSULTATION:")
	fmt.Fprintln(w, wrapText(r.ConsultationAdvice, 80, "   "))
	fmt.Fprintln(w)

	for _, s := range p.Sections {
		yellow.Fprintf(w, "%s:\n", strings.ToUpper(s.Title))
		for i, item := range s.Items {
			if s.Key == "action_steps" || s.Key == "questions_for_doctor" {
				fmt.Fprintf(w, "   %d. %s\n", i+1, item)
				continue
			}
			fmt.Fprintf(w, "   - %s\n", item)
		}
		fmt.Fprintln(w)
	}

	if p.RecoveryTime != "" {
		fmt.Fprintf(w, "Estimated Recovery Time: %s\n\n", p.RecoveryTime)
	}
	green.Fprintf(w, "KEY TAKEAWAY: %s\n", r.KeyMessage)

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%s\n", color.HiBlackString("Analysed by %s. Educational use only, not a substitute for professional medical advice.", a.Model.Identifier))
	fmt.Fprintf(w, "%s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func riskColor(l assessment.RiskLevel) *color.Color {
	switch l {
	case assessment.RiskHigh:
		return color.New(color.FgRed, color.Bold)
	case assessment.RiskMedium:
		return color.New(color.FgYellow, color.Bold)
	case assessment.RiskLow:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		current := indent
		for _, word := range words {
			switch {
			case len(current)+len(word)+1 > width && current != indent:
				result.WriteString(current + "\n")
				current = indent + word
			case current == indent:
				current += word
			default:
				current += " " + word
			}
		}
		result.WriteString(current + "\n")
	}
	return strings.TrimSuffix(result.String(), "\n")
}
