// Package error defines domain-specific errors for the Boss Bitch backend.
package error

import "errors"

// Sync domain errors.
var (
	// ErrReplayInProgress is returned by a replay trigger while another
	// replay pass is already running.
	ErrReplayInProgress = errors.New("replay already in progress")

	// ErrUnknownActionPath is returned when a queued action's path does not
	// map to any backend operation.
	ErrUnknownActionPath = errors.New("unknown sync action path")

	// ErrUnknownActionType is returned when a queued action carries an
	// unsupported mutation type for its path.
	ErrUnknownActionType = errors.New("unknown sync action type")

	// ErrRemoteUnavailable is returned when the remote store cannot be
	// reached and the caller did not fall back to the local store.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)

// SyncErrorCode defines error codes for sync errors.
// Format: SYN-XXYYYY where XX is category and YYYY is specific error.
type SyncErrorCode string

const (
	ErrCodeReplayInProgress  SyncErrorCode = "SYN-010001"
	ErrCodeUnknownActionPath SyncErrorCode = "SYN-010002"
	ErrCodeUnknownActionType SyncErrorCode = "SYN-010003"
	ErrCodeRemoteUnavailable SyncErrorCode = "SYN-020001"
)

// SyncError represents a sync error with code and message.
type SyncError struct {
	Code    SyncErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError with the given code and message.
func NewSyncError(code SyncErrorCode, message string, err error) *SyncError {
	return &SyncError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
