// Package error defines domain-specific errors for the Boss Bitch backend.
package error

import "errors"

// Entry domain errors.
var (
	// ErrEntryNotFound is returned when a daily entry is not found.
	ErrEntryNotFound = errors.New("daily entry not found")

	// ErrInvalidAmount is returned when an income amount is zero or negative.
	ErrInvalidAmount = errors.New("invalid income amount")

	// ErrInvalidDate is returned when a date or date range cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange is returned when a range's start falls after its end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrProgressMismatch is returned when an entry's progress does not
	// equal the sum of its segment values.
	ErrProgressMismatch = errors.New("entry progress does not match segment totals")
)

// EntryErrorCode defines error codes for entry errors.
// Format: ENT-XXYYYY where XX is category and YYYY is specific error.
type EntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount    EntryErrorCode = "ENT-010001"
	ErrCodeInvalidDate      EntryErrorCode = "ENT-010002"
	ErrCodeInvalidRange     EntryErrorCode = "ENT-010003"
	ErrCodeProgressMismatch EntryErrorCode = "ENT-010004"

	// Lookup errors (02XXXX)
	ErrCodeEntryNotFound EntryErrorCode = "ENT-020001"
)

// EntryError represents an entry error with code and message.
type EntryError struct {
	Code    EntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// NewEntryError creates a new EntryError with the given code and message.
func NewEntryError(code EntryErrorCode, message string, err error) *EntryError {
	return &EntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
