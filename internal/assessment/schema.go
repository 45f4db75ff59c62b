package assessment

import (
	"strings"
)

// SchemaVersion identifies the field table below. Bump it whenever a field,
// enum value, or default changes; the prompt template changes with it.
const SchemaVersion = "2024.2"

// FieldKind is the value shape of one schema field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindEnum
	KindBool
	KindList
)

// Field is one row of the canonical schema.
type Field struct {
	Name     string
	Kind     FieldKind
	Enum     []string
	Default  string
	Optional bool
	// Hint is the placeholder shown to the model for string fields.
	Hint string
	// Examples are the placeholder items shown to the model for list fields.
	Examples []string
}

const (
	DefaultConditionName      = "Assessment in progress"
	DefaultSimpleExplanation  = "Please consult a medical professional for detailed diagnosis."
	DefaultConsultationAdvice = "Consult a general physician for initial evaluation"
	DefaultKeyMessage         = "Always prioritize consulting qualified medical professionals for proper diagnosis and treatment."
)

// Schema is the ordered field table shared by the prompt builder and the
// normalizer. Order matches the JSON tags of Result.
var Schema = []Field{
	{Name: "risk_level", Kind: KindEnum, Enum: enumStrings(RiskLevels), Default: string(RiskMedium)},
	{Name: "urgency", Kind: KindEnum, Enum: enumStrings(Urgencies), Default: string(UrgencyNonUrgent)},
	{Name: "condition_name", Kind: KindString, Default: DefaultConditionName, Hint: "Name of the likely condition"},
	{Name: "simple_explanation", Kind: KindString, Default: DefaultSimpleExplanation, Hint: "Explain the condition in simple, easy-to-understand language (3-4 sentences)"},
	{Name: "is_emergency", Kind: KindBool, Default: "false"},
	{Name: "surgery_needed", Kind: KindEnum, Enum: enumStrings(SurgeryStances), Default: string(SurgeryMaybeNeeded)},
	{Name: "consultation_advice", Kind: KindString, Default: DefaultConsultationAdvice, Hint: "Type of specialist to consult and when"},
	{Name: "action_steps", Kind: KindList, Examples: []string{"Step 1", "Step 2", "Step 3", "Step 4"}},
	{Name: "questions_for_doctor", Kind: KindList, Examples: []string{"Question 1", "Question 2", "Question 3", "Question 4"}},
	{Name: "alternative_treatments", Kind: KindList, Optional: true, Examples: []string{"Alternative 1", "Alternative 2", "Alternative 3"}},
	{Name: "warning_signs", Kind: KindList, Examples: []string{"Sign 1 that requires immediate attention", "Sign 2", "Sign 3"}},
	{Name: "lifestyle_changes", Kind: KindList, Optional: true, Examples: []string{"Change 1", "Change 2", "Change 3"}},
	{Name: "estimated_recovery_time", Kind: KindString, Optional: true, Hint: "Recovery timeline if treatment is pursued"},
	{Name: "key_message", Kind: KindString, Default: DefaultKeyMessage, Hint: "One important message for the patient"},
}

// Defaults returns the record every absent field falls back to.
func Defaults() Result {
	return Result{
		RiskLevel:             RiskMedium,
		Urgency:               UrgencyNonUrgent,
		ConditionName:         DefaultConditionName,
		SimpleExplanation:     DefaultSimpleExplanation,
		IsEmergency:           false,
		SurgeryNeeded:         SurgeryMaybeNeeded,
		ConsultationAdvice:    DefaultConsultationAdvice,
		ActionSteps:           []string{},
		QuestionsForDoctor:    []string{},
		AlternativeTreatments: []string{},
		WarningSigns:          []string{},
		LifestyleChanges:      []string{},
		KeyMessage:            DefaultKeyMessage,
	}
}

// SchemaTemplate renders the JSON shape the model is asked to return.
func SchemaTemplate() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range Schema {
		b.WriteString(`    "`)
		b.WriteString(f.Name)
		b.WriteString(`": `)
		switch f.Kind {
		case KindEnum:
			b.WriteString(`"` + strings.Join(f.Enum, "/") + `"`)
		case KindBool:
			b.WriteString("true/false")
		case KindList:
			b.WriteString("[\n")
			for j, ex := range f.Examples {
				b.WriteString(`        "` + ex + `"`)
				if j < len(f.Examples)-1 {
					b.WriteString(",")
				}
				b.WriteString("\n")
			}
			b.WriteString("    ]")
		default:
			b.WriteString(`"` + f.Hint + `"`)
		}
		if i < len(Schema)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
