package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/repository/report"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/session"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/util/jsonutil"
)

// Analyzer runs one analysis call chain.
type Analyzer interface {
	Analyze(ctx context.Context, req assessment.Request) (assessment.Outcome, error)
	MinConcernChars() int
}

// Service holds the HTTP presentation collaborator's dependencies.
type Service struct {
	analyzer Analyzer
	resolver assessment.CandidateResolver
	sessions *session.Store
	reports  report.Store
	log      *zap.Logger
	now      func() time.Time
}

type Deps struct {
	Analyzer Analyzer
	Resolver assessment.CandidateResolver
	Sessions *session.Store
	Reports  report.Store
	Logger   *zap.Logger
}

func NewService(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reports := d.Reports
	if reports == nil {
		reports = report.NewMemoryStore()
	}
	return &Service{
		analyzer: d.Analyzer,
		resolver: d.Resolver,
		sessions: d.Sessions,
		reports:  reports,
		log:      logger,
		now:      time.Now,
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind   string `json:"kind"`
	Notice string `json:"notice"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := jsonutil.MarshalNoEscape(v)
	if err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, kind, notice string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Notice: notice}})
}

// writeAnalysisError maps an analysis failure onto a status and user notice.
func writeAnalysisError(w http.ResponseWriter, err error) {
	kind := assessment.Classify(err)
	writeError(w, StatusFor(kind), string(kind), assessment.UserNotice(err))
}

// StatusFor is the HTTP status of an analysis failure kind.
func StatusFor(kind assessment.ErrorKind) int {
	switch kind {
	case assessment.KindInput:
		return http.StatusUnprocessableEntity
	case assessment.KindModelUnavailable:
		return http.StatusServiceUnavailable
	case assessment.KindExtraction, assessment.KindMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(v)
}

func (s *Service) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
