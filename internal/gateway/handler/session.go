package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/repository/report"
)

func (s *Service) GetSession(w http.ResponseWriter, r *http.Request) {
	st, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ResetSession handles DELETE /v1/sessions/{id}.
func (s *Service) ResetSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Reset(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reportResponse struct {
	ReportID  string `json:"report_id"`
	SessionID string `json:"session_id"`
	URL       string `json:"url,omitempty"`
}

// CreateReport handles POST /v1/sessions/{id}/report.
func (s *Service) CreateReport(w http.ResponseWriter, r *http.Request) {
	st, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	rep, err := report.FromSession(st, s.now())
	if errors.Is(err, report.ErrIncomplete) {
		writeError(w, http.StatusConflict, "incomplete", "run an analysis before exporting a report")
		return
	}
	body, err := rep.Encode()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "could not encode report")
		return
	}
	if err := s.reports.Put(r.Context(), rep.SessionID, rep.ID, body); err != nil {
		s.log.Warn("report store failed", zap.String("session_id", rep.SessionID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "report_store", "could not save the report, please try again")
		return
	}
	url, err := s.reports.GetURL(r.Context(), rep.SessionID, rep.ID)
	if err != nil {
		s.log.Warn("report presign failed", zap.String("report_id", rep.ID), zap.Error(err))
	}
	writeJSON(w, http.StatusCreated, reportResponse{ReportID: rep.ID, SessionID: rep.SessionID, URL: url})
}

// GetReport handles GET /v1/sessions/{id}/reports/{reportID}.
func (s *Service) GetReport(w http.ResponseWriter, r *http.Request) {
	body, err := s.reports.Get(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reportID"))
	if errors.Is(err, report.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "report not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "report_store", "could not load the report")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
