package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
)

func TestStatusFor(t *testing.T) {
	cases := map[assessment.ErrorKind]int{
		assessment.KindInput:            http.StatusUnprocessableEntity,
		assessment.KindModelUnavailable: http.StatusServiceUnavailable,
		assessment.KindExtraction:       http.StatusBadGateway,
		assessment.KindMalformed:        http.StatusBadGateway,
		assessment.KindConfiguration:    http.StatusInternalServerError,
		assessment.KindInternal:         http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, StatusFor(kind), string(kind))
	}
}

func TestWriteAnalysisError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeAnalysisError(rec, &assessment.ModelUnavailableError{Attempts: []string{"m"}})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":{"kind":"model_unavailable","notice":"The analysis service is temporarily unavailable. Please run the analysis again in a moment."}}`, rec.Body.String())
}
