package llmclient

import (
	"context"
	"errors"
	"fmt"
)

var ErrMissingAPIKey = errors.New("llmclient: api key is required")

// Client submits one prompt to one remote model.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string, cfg GenerationConfig, cand ModelCandidate) (RawModelResponse, error)
	Close() error
}

// ModelLister enumerates the model identifiers the remote service currently offers.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// RawModelResponse is the untouched text returned by one generation call.
type RawModelResponse struct {
	Text      string
	Candidate ModelCandidate
}

// TransportError reports a failed call for a single candidate: bad credentials,
// an identifier the service rejected, or a transport timeout.
type TransportError struct {
	Model string
	Err   error
}

func (e *TransportError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("llmclient: transport: %v", e.Err)
	}
	return fmt.Sprintf("llmclient: transport (%s): %v", e.Model, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func NewTransportError(model string, err error) error {
	return &TransportError{Model: model, Err: err}
}

// IsTransportError reports whether err carries a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
