package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/session"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/util/jsonutil"
)

// Store persists exported session reports.
type Store interface {
	Put(ctx context.Context, sessionID, reportID string, content []byte) error
	Get(ctx context.Context, sessionID, reportID string) ([]byte, error)
	GetURL(ctx context.Context, sessionID, reportID string) (string, error)
	List(ctx context.Context, sessionID string) ([]string, error)
}

var (
	ErrNotFound   = errors.New("report not found")
	ErrIncomplete = errors.New("session has no completed analysis")
)

// Report is the archived form of one completed session. It never includes
// the concern text.
type Report struct {
	ID            string                  `json:"report_id"`
	SessionID     string                  `json:"session_id"`
	SchemaVersion string                  `json:"schema_version"`
	CreatedAt     time.Time               `json:"created_at"`
	Model         string                  `json:"model,omitempty"`
	Result        assessment.Result       `json:"result"`
	Presentation  assessment.Presentation `json:"presentation"`
	Disclaimer    string                  `json:"disclaimer"`
}

const Disclaimer = "MedWise AI is an educational tool and NOT a substitute for professional medical advice, diagnosis, or treatment."

// FromSession builds a report for a completed session state.
func FromSession(st session.State, now time.Time) (Report, error) {
	if !st.Completed || st.Result == nil {
		return Report{}, ErrIncomplete
	}
	res := st.Result.Clone()
	r := Report{
		ID:            uuid.NewString(),
		SessionID:     st.ID,
		SchemaVersion: assessment.SchemaVersion,
		CreatedAt:     now.UTC(),
		Result:        res,
		Presentation:  assessment.Present(res),
		Disclaimer:    Disclaimer,
	}
	if st.Model != nil {
		r.Model = st.Model.Identifier
	}
	return r, nil
}

// Encode renders r as the archived JSON document.
func (r Report) Encode() ([]byte, error) {
	return jsonutil.MarshalNoEscape(r)
}

func objectKey(sessionID, reportID string) string {
	return strings.TrimSpace(sessionID) + "/" + strings.TrimSuffix(strings.TrimSpace(reportID), ".json") + ".json"
}

func validateKeys(sessionID, reportID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errors.New("session_id is required")
	}
	if strings.TrimSpace(reportID) == "" {
		return errors.New("report_id is required")
	}
	return nil
}
