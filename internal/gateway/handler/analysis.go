package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/session"
)

type analyzeRequest struct {
	SessionID string   `json:"session_id"`
	Concern   string   `json:"concern"`
	Tags      []string `json:"tags"`
}

type analyzeResponse struct {
	SessionID    string                   `json:"session_id"`
	Model        llmclient.ModelCandidate `json:"model"`
	Attempts     int                      `json:"attempts"`
	Result       assessment.Result        `json:"result"`
	Presentation assessment.Presentation  `json:"presentation"`
}

// Analyze handles POST /v1/analyses. The session is replaced only on success.
func (s *Service) Analyze(w http.ResponseWriter, r *http.Request) {
	var in analyzeRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}
	if in.SessionID != "" {
		if _, ok := s.sessions.Get(in.SessionID); !ok {
			writeError(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
	}
	out, err := s.analyzer.Analyze(r.Context(), assessment.NewRequest(in.Concern, in.Tags))
	if err != nil {
		s.log.Info("analysis failed",
			zap.String("kind", string(assessment.Classify(err))),
			zap.Error(err))
		writeAnalysisError(w, err)
		return
	}
	st, err := s.sessions.Commit(in.SessionID, out)
	if errors.Is(err, session.ErrUnknownSession) {
		// Reset while the analysis was running.
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		SessionID:    st.ID,
		Model:        out.Candidate,
		Attempts:     out.Attempts,
		Result:       *st.Result,
		Presentation: *st.Presentation,
	})
}

// Models handles GET /v1/models.
func (s *Service) Models(w http.ResponseWriter, r *http.Request) {
	cands, err := s.resolver.Resolve(r.Context(), llm.CapabilityGeneral)
	if err != nil {
		writeAnalysisError(w, &assessment.ConfigurationError{Reason: "model candidates", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": cands})
}

// Conditions handles GET /v1/conditions.
func (s *Service) Conditions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"conditions":        assessment.CommonConditions,
		"min_concern_chars": s.analyzer.MinConcernChars(),
	})
}
