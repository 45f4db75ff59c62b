package assessment

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EmergencyContact is a phone number shown alongside emergency results.
type EmergencyContact struct {
	Label  string `json:"label" yaml:"label"`
	Number string `json:"number" yaml:"number"`
}

var EmergencyContacts = []EmergencyContact{
	{Label: "Emergency", Number: "112"},
	{Label: "Ambulance", Number: "102"},
	{Label: "Medical Helpline", Number: "108"},
}

// Section is an optional list block of the result, present only when it has items.
type Section struct {
	Key   string   `json:"key" yaml:"key"`
	Title string   `json:"title" yaml:"title"`
	Items []string `json:"items" yaml:"items"`
}

// Presentation is a read-only projection of a Result for display.
type Presentation struct {
	Emergency         bool               `json:"emergency" yaml:"emergency"`
	RiskLevel         RiskLevel          `json:"risk_level" yaml:"risk_level"`
	RiskTier          string             `json:"risk_tier" yaml:"risk_tier"`
	UrgencyLabel      string             `json:"urgency_label" yaml:"urgency_label"`
	SurgeryLabel      string             `json:"surgery_label" yaml:"surgery_label"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts,omitempty" yaml:"emergency_contacts,omitempty"`
	Sections          []Section          `json:"sections" yaml:"sections"`
	RecoveryTime      string             `json:"recovery_time,omitempty" yaml:"recovery_time,omitempty"`
}

var titleCaser = cases.Title(language.English)

// Humanize turns an enum value such as ALTERNATIVES_AVAILABLE into
// "Alternatives Available".
func Humanize(v string) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(v, "_", " ")))
}

// RiskTier is the display styling key for a risk level.
func RiskTier(l RiskLevel) string {
	return "risk-" + strings.ToLower(string(l))
}

// Present derives the display view of r. It never mutates r.
func Present(r Result) Presentation {
	p := Presentation{
		Emergency:    r.IsEmergency,
		RiskLevel:    r.RiskLevel,
		RiskTier:     RiskTier(r.RiskLevel),
		UrgencyLabel: Humanize(string(r.Urgency)),
		SurgeryLabel: Humanize(string(r.SurgeryNeeded)),
		RecoveryTime: r.EstimatedRecoveryTime,
		Sections:     []Section{},
	}
	if r.IsEmergency {
		p.EmergencyContacts = append([]EmergencyContact(nil), EmergencyContacts...)
	}
	add := func(key, title string, items []string) {
		if len(items) == 0 {
			return
		}
		p.Sections = append(p.Sections, Section{Key: key, Title: title, Items: cloneList(items)})
	}
	add("warning_signs", "Warning Signs (Seek Immediate Care)", r.WarningSigns)
	add("action_steps", "Recommended Action Steps", r.ActionSteps)
	add("alternative_treatments", "Alternative Treatment Options", r.AlternativeTreatments)
	add("questions_for_doctor", "Important Questions to Ask Your Doctor", r.QuestionsForDoctor)
	add("lifestyle_changes", "Recommended Lifestyle Changes", r.LifestyleChanges)
	return p
}
