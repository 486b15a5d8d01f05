package services

import (
	"context"
	"errors"
	"fmt"

	"alfredoptarigan/interview-prep/internal/repositories"
)

type ErrorKind string

const (
	KindInvalidInput              ErrorKind = "InvalidInput"
	KindNotFound                  ErrorKind = "NotFound"
	KindExtractionFailure         ErrorKind = "ExtractionFailure"
	KindGenerationUnavailable     ErrorKind = "GenerationUnavailable"
	KindGenerationTimeout         ErrorKind = "GenerationTimeout"
	KindMalformedGenerationOutput ErrorKind = "MalformedGenerationOutput"
	KindSchemaViolation           ErrorKind = "SchemaViolation"
	KindStorageFailure            ErrorKind = "StorageFailure"
	KindStorageTimeout            ErrorKind = "StorageTimeout"
)

// PipelineError is the single error type that leaves the services package.
// RawResponse carries the offending model output when there is one.
type PipelineError struct {
	Kind        ErrorKind
	Message     string
	RawResponse string
	Cause       error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, message string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Message: message, Cause: cause}
}

// classifyStorageError maps repository errors onto pipeline kinds.
func classifyStorageError(message string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return newError(KindNotFound, message, err)
	case errors.Is(err, context.DeadlineExceeded):
		return newError(KindStorageTimeout, message, err)
	default:
		return newError(KindStorageFailure, message, err)
	}
}

func invalidInput(format string, args ...any) *PipelineError {
	return newError(KindInvalidInput, fmt.Sprintf(format, args...), nil)
}

func schemaViolation(raw string, format string, args ...any) *PipelineError {
	return &PipelineError{
		Kind:        KindSchemaViolation,
		Message:     fmt.Sprintf(format, args...),
		RawResponse: raw,
	}
}

// KindOf returns the kind of err, or "" when err is not a PipelineError.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// RawResponseOf returns the model output attached to err, if any.
func RawResponseOf(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.RawResponse
	}
	return ""
}
