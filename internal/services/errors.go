package services

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrConfiguration = errors.New("Server not configured for Gemini. Set GEMINI_API_KEY.")
	ErrEmptyResponse = errors.New("no completion text in response")
	ErrFileTooLarge  = errors.New("file too large")
)

// ValidationError is a client error that maps directly to an HTTP status.
type ValidationError struct {
	Status  int
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Status: http.StatusBadRequest, Message: message}
}

// UpstreamError wraps failures of the AI call. Its message is never shown to clients.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ValidateUploadSize rejects files above max. A file of exactly max bytes is accepted.
func ValidateUploadSize(size, max int64) error {
	if size > max {
		return &ValidationError{
			Status:  http.StatusRequestEntityTooLarge,
			Message: fmt.Sprintf("File too large. Max size: %d bytes", max),
			Err:     ErrFileTooLarge,
		}
	}
	return nil
}
