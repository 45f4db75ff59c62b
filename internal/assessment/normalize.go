package assessment

import (
	"errors"
	"strings"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/util/jsonutil"
)

var errNotObject = errors.New("reply is not a JSON object")

// ParseAndNormalize parses text as a JSON object and maps it onto the
// canonical schema. Fields that are absent or of the wrong shape take their
// defaults; it fails only when text does not parse as an object.
func ParseAndNormalize(text string) (Result, error) {
	var raw map[string]any
	if err := jsonutil.UnmarshalFlex([]byte(text), &raw); err != nil {
		return Result{}, &MalformedResponseError{Err: err}
	}
	if raw == nil {
		return Result{}, &MalformedResponseError{Err: errNotObject}
	}
	return Normalize(raw), nil
}

// Normalize maps a decoded record onto the canonical schema.
func Normalize(raw map[string]any) Result {
	res := Defaults()
	for _, f := range Schema {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			continue
		}
		switch f.Kind {
		case KindEnum:
			if s, ok := coerceEnum(v, f.Enum); ok {
				setString(&res, f.Name, s)
			}
		case KindBool:
			if b, ok := coerceBool(v); ok {
				res.IsEmergency = b
			}
		case KindList:
			setList(&res, f.Name, coerceList(v))
		default:
			if s, ok := v.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					setString(&res, f.Name, s)
				}
			}
		}
	}
	return res
}

func coerceEnum(v any, allowed []string) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for _, a := range allowed {
		if s == a {
			return a, true
		}
	}
	return "", false
}

func coerceBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}

func coerceList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func setString(r *Result, name, v string) {
	switch name {
	case "risk_level":
		r.RiskLevel = RiskLevel(v)
	case "urgency":
		r.Urgency = Urgency(v)
	case "surgery_needed":
		r.SurgeryNeeded = SurgeryStance(v)
	case "condition_name":
		r.ConditionName = v
	case "simple_explanation":
		r.SimpleExplanation = v
	case "consultation_advice":
		r.ConsultationAdvice = v
	case "estimated_recovery_time":
		r.EstimatedRecoveryTime = v
	case "key_message":
		r.KeyMessage = v
	}
}

func setList(r *Result, name string, v []string) {
	switch name {
	case "action_steps":
		r.ActionSteps = v
	case "questions_for_doctor":
		r.QuestionsForDoctor = v
	case "alternative_treatments":
		r.AlternativeTreatments = v
	case "warning_signs":
		r.WarningSigns = v
	case "lifestyle_changes":
		r.LifestyleChanges = v
	}
}
