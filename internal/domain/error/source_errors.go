// Package error defines domain-specific errors for the Boss Bitch backend.
package error

import "errors"

// Income source domain errors.
var (
	// ErrSourceNotFound is returned when an income source is not in the catalog.
	ErrSourceNotFound = errors.New("income source not found")

	// ErrSourceAlreadyExists is returned when adding a source whose id is taken.
	ErrSourceAlreadyExists = errors.New("income source already exists")

	// ErrInvalidSource is returned when a source is missing its id or name.
	ErrInvalidSource = errors.New("invalid income source")
)

// SourceErrorCode defines error codes for income source errors.
// Format: SRC-XXYYYY where XX is category and YYYY is specific error.
type SourceErrorCode string

const (
	ErrCodeInvalidSource       SourceErrorCode = "SRC-010001"
	ErrCodeSourceNotFound      SourceErrorCode = "SRC-020001"
	ErrCodeSourceAlreadyExists SourceErrorCode = "SRC-020002"
)

// SourceError represents an income source error with code and message.
type SourceError struct {
	Code    SourceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError with the given code and message.
func NewSourceError(code SourceErrorCode, message string, err error) *SourceError {
	return &SourceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
