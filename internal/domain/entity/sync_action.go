// Package entity defines the core business entities for the domain layer.
package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SyncActionType classifies a queued mutation.
type SyncActionType string

const (
	SyncActionAdd    SyncActionType = "add"
	SyncActionUpdate SyncActionType = "update"
	SyncActionDelete SyncActionType = "delete"
)

// Well-known sync paths. Entity-collection paths carry a key suffix,
// e.g. "dailyEntries/2024-05-01" or "incomeSources/freelance".
const (
	PathGoals         = "goals"
	PathPreferences   = "preferences"
	PathIncomeSources = "incomeSources"
	PathDailyEntries  = "dailyEntries"
)

// DailyEntryPath returns the sync path for one day's entry.
func DailyEntryPath(dateKey string) string {
	return PathDailyEntries + "/" + dateKey
}

// IncomeSourcePath returns the sync path for one income source.
func IncomeSourcePath(id string) string {
	return PathIncomeSources + "/" + id
}

// SplitPath splits a sync path into its collection and optional key.
func SplitPath(path string) (collection, key string) {
	collection, key, _ = strings.Cut(path, "/")
	return collection, key
}

// SyncAction is a durable record of one mutation that could not be
// applied to the remote store when it happened. Actions are appended to
// the offline queue and replayed in insertion order once connectivity
// and authentication are available.
type SyncAction struct {
	ID        uuid.UUID       `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      SyncActionType  `json:"type"`
	Path      string          `json:"path"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewSyncAction creates a queue action with a fresh id and timestamp.
func NewSyncAction(actionType SyncActionType, path string, data json.RawMessage) *SyncAction {
	return &SyncAction{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Type:      actionType,
		Path:      path,
		Data:      data,
	}
}
