package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/handler"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/middleware"
)

// analysisTimeout bounds one request, including every candidate attempt.
const analysisTimeout = 2 * time.Minute

func NewRouter(svc *handler.Service, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestIDHeader)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/healthz", svc.Health)

	r.Route("/v1", func(r chi.Router) {
		r.With(chimw.Timeout(analysisTimeout)).Post("/analyses", svc.Analyze)
		r.Get("/models", svc.Models)
		r.Get("/conditions", svc.Conditions)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", svc.GetSession)
			r.Delete("/", svc.ResetSession)
			r.Post("/report", svc.CreateReport)
			r.Get("/reports/{reportID}", svc.GetReport)
		})
	})
	return r
}
