// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"time"
)

// SnapshotVersion is the current export format version.
const SnapshotVersion = 1

// Snapshot validation errors.
var (
	ErrUnsupportedSnapshotVersion = errors.New("unsupported snapshot version")
	ErrMalformedSnapshot          = errors.New("malformed snapshot")
)

// SnapshotData is the full user data set carried by an export.
type SnapshotData struct {
	Goals          *Goal                    `json:"goals"`
	Preferences    *Preferences             `json:"preferences"`
	IncomeSources  []IncomeSource           `json:"incomeSources"`
	DailyEntries   map[string]*DailyEntry   `json:"dailyEntries"`
	MonthlyEntries map[string]*MonthlyEntry `json:"monthlyEntries"`
}

// Snapshot is the export/import document. Importing a snapshot replaces
// all existing data (clear-then-restore, not merge).
type Snapshot struct {
	Version   int          `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
	Data      SnapshotData `json:"data"`
}

// NewSnapshot wraps a data set in a versioned, timestamped export document.
func NewSnapshot(data SnapshotData) *Snapshot {
	return &Snapshot{
		Version:   SnapshotVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Validate checks the snapshot's structure before it may replace existing
// data. It does not touch any store; callers only clear data after this
// passes.
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return ErrUnsupportedSnapshotVersion
	}
	if s.Data.Goals == nil || s.Data.Preferences == nil {
		return ErrMalformedSnapshot
	}
	if s.Data.IncomeSources == nil || s.Data.DailyEntries == nil || s.Data.MonthlyEntries == nil {
		return ErrMalformedSnapshot
	}
	for key, entry := range s.Data.DailyEntries {
		if entry == nil || entry.Date != key {
			return ErrMalformedSnapshot
		}
		if _, err := ParseDateKey(key); err != nil {
			return ErrMalformedSnapshot
		}
	}
	for key, entry := range s.Data.MonthlyEntries {
		if entry == nil || entry.MonthKey != key {
			return ErrMalformedSnapshot
		}
		if _, _, err := ParseMonthKey(key); err != nil {
			return ErrMalformedSnapshot
		}
	}
	return nil
}
