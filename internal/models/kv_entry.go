package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry backs the SQL store implementations: one row per namespaced key.
type KVEntry struct {
	Namespace string         `gorm:"primaryKey;type:varchar(64)" json:"namespace"`
	Key       string         `gorm:"primaryKey;column:entry_key;type:varchar(255)" json:"key"`
	Value     datatypes.JSON `json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
