// Package error defines domain-specific errors for the Boss Bitch backend.
package error

import "errors"

// Backup domain errors.
var (
	// ErrImportFailed is returned when an import could not be applied.
	ErrImportFailed = errors.New("failed to import data")

	// ErrMigrationRequiresAuth is returned when a local-to-remote migration
	// is attempted without a signed-in user.
	ErrMigrationRequiresAuth = errors.New("user must be authenticated to migrate data")
)

// BackupErrorCode defines error codes for backup errors.
// Format: BCK-XXYYYY where XX is category and YYYY is specific error.
type BackupErrorCode string

const (
	ErrCodeMalformedSnapshot     BackupErrorCode = "BCK-010001"
	ErrCodeUnsupportedVersion    BackupErrorCode = "BCK-010002"
	ErrCodeImportFailed          BackupErrorCode = "BCK-020001"
	ErrCodeMigrationRequiresAuth BackupErrorCode = "BCK-020002"
)

// BackupError represents a backup error with code and message.
type BackupError struct {
	Code    BackupErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BackupError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BackupError) Unwrap() error {
	return e.Err
}

// NewBackupError creates a new BackupError with the given code and message.
func NewBackupError(code BackupErrorCode, message string, err error) *BackupError {
	return &BackupError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
