package model

import "time"

// LocalRecordModel represents the local key-value store backing offline
// operation. Values are JSON-encoded domain entities keyed by namespace.
type LocalRecordModel struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the LocalRecordModel.
func (LocalRecordModel) TableName() string {
	return "local_records"
}
