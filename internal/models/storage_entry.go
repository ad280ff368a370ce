package models

import "time"

// StorageEntry is one row of the sqlite storage medium.
type StorageEntry struct {
	Key       string `gorm:"primaryKey;column:storage_key"`
	Value     string `gorm:"not null;column:value"`
	UpdatedAt time.Time
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
