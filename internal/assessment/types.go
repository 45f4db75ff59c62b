package assessment

// RiskLevel is the overall risk tier reported by the model.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Urgency is how soon care should be sought.
type Urgency string

const (
	UrgencyEmergency Urgency = "EMERGENCY"
	UrgencyUrgent    Urgency = "URGENT"
	UrgencyCanWait   Urgency = "CAN_WAIT"
	UrgencyNonUrgent Urgency = "NON_URGENT"
)

// SurgeryStance is the model's view on whether surgery is warranted.
type SurgeryStance string

const (
	SurgeryLikelyNeeded          SurgeryStance = "LIKELY_NEEDED"
	SurgeryMaybeNeeded           SurgeryStance = "MAYBE_NEEDED"
	SurgeryAlternativesAvailable SurgeryStance = "ALTERNATIVES_AVAILABLE"
	SurgeryNotNeeded             SurgeryStance = "NOT_NEEDED"
)

var (
	RiskLevels     = []RiskLevel{RiskLow, RiskMedium, RiskHigh}
	Urgencies      = []Urgency{UrgencyEmergency, UrgencyUrgent, UrgencyCanWait, UrgencyNonUrgent}
	SurgeryStances = []SurgeryStance{SurgeryLikelyNeeded, SurgeryMaybeNeeded, SurgeryAlternativesAvailable, SurgeryNotNeeded}
)

// Result is the canonical analysis record. After normalization every field
// holds a schema-valid value; list fields are never nil.
type Result struct {
	RiskLevel             RiskLevel     `json:"risk_level" yaml:"risk_level"`
	Urgency               Urgency       `json:"urgency" yaml:"urgency"`
	ConditionName         string        `json:"condition_name" yaml:"condition_name"`
	SimpleExplanation     string        `json:"simple_explanation" yaml:"simple_explanation"`
	IsEmergency           bool          `json:"is_emergency" yaml:"is_emergency"`
	SurgeryNeeded         SurgeryStance `json:"surgery_needed" yaml:"surgery_needed"`
	ConsultationAdvice    string        `json:"consultation_advice" yaml:"consultation_advice"`
	ActionSteps           []string      `json:"action_steps" yaml:"action_steps"`
	QuestionsForDoctor    []string      `json:"questions_for_doctor" yaml:"questions_for_doctor"`
	AlternativeTreatments []string      `json:"alternative_treatments" yaml:"alternative_treatments"`
	WarningSigns          []string      `json:"warning_signs" yaml:"warning_signs"`
	LifestyleChanges      []string      `json:"lifestyle_changes" yaml:"lifestyle_changes"`
	EstimatedRecoveryTime string        `json:"estimated_recovery_time,omitempty" yaml:"estimated_recovery_time,omitempty"`
	KeyMessage            string        `json:"key_message" yaml:"key_message"`
}

// HasRecoveryTime reports whether the optional recovery section is present.
func (r Result) HasRecoveryTime() bool { return r.EstimatedRecoveryTime != "" }

// Clone returns a deep copy so readers cannot alias the stored lists.
func (r Result) Clone() Result {
	out := r
	out.ActionSteps = cloneList(r.ActionSteps)
	out.QuestionsForDoctor = cloneList(r.QuestionsForDoctor)
	out.AlternativeTreatments = cloneList(r.AlternativeTreatments)
	out.WarningSigns = cloneList(r.WarningSigns)
	out.LifestyleChanges = cloneList(r.LifestyleChanges)
	return out
}

func cloneList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
