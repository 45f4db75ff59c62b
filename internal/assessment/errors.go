package assessment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is a stable, user-facing name for an analysis failure.
type ErrorKind string

const (
	KindConfiguration    ErrorKind = "configuration"
	KindInput            ErrorKind = "input"
	KindModelUnavailable ErrorKind = "model_unavailable"
	KindExtraction       ErrorKind = "extraction"
	KindMalformed        ErrorKind = "malformed_response"
	KindInternal         ErrorKind = "internal"
)

// ConfigurationError halts analysis before any request is sent.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return "configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InputError rejects a request before a prompt is built.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return "input: " + e.Reason }

// ModelUnavailableError means every candidate failed. Last holds the final
// candidate's failure.
type ModelUnavailableError struct {
	Attempts []string
	Last     error
}

func (e *ModelUnavailableError) Error() string {
	msg := fmt.Sprintf("no model available after %d attempt(s)", len(e.Attempts))
	if len(e.Attempts) > 0 {
		msg += " [" + strings.Join(e.Attempts, ", ") + "]"
	}
	if e.Last != nil {
		msg += ": " + e.Last.Error()
	}
	return msg
}

func (e *ModelUnavailableError) Unwrap() error { return e.Last }

// ExtractionError means the reply contained no text to parse.
type ExtractionError struct {
	Model string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction: empty reply from %s", e.Model)
}

// MalformedResponseError means the extracted text was not a JSON object.
type MalformedResponseError struct {
	Model string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("malformed response: %v", e.Err)
	}
	return fmt.Sprintf("malformed response from %s: %v", e.Model, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Classify maps err onto its ErrorKind.
func Classify(err error) ErrorKind {
	var (
		cfg *ConfigurationError
		in  *InputError
		mu  *ModelUnavailableError
		ex  *ExtractionError
		mal *MalformedResponseError
	)
	switch {
	case errors.As(err, &cfg):
		return KindConfiguration
	case errors.As(err, &in):
		return KindInput
	case errors.As(err, &mu):
		return KindModelUnavailable
	case errors.As(err, &ex):
		return KindExtraction
	case errors.As(err, &mal):
		return KindMalformed
	default:
		return KindInternal
	}
}

// UserNotice converts an analysis failure into a message safe to show the user.
func UserNotice(err error) string {
	if err == nil {
		return ""
	}
	switch Classify(err) {
	case KindConfiguration:
		return "The analysis service is not configured. Please set the API key and restart."
	case KindInput:
		var in *InputError
		errors.As(err, &in)
		return "Please describe your concern in more detail: " + in.Reason + "."
	case KindModelUnavailable:
		return "The analysis service is temporarily unavailable. Please run the analysis again in a moment."
	case KindExtraction, KindMalformed:
		return "Error parsing response. Please try again."
	default:
		return "Error analyzing condition. Please try again."
	}
}
