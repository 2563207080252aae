package models

import (
	"time"

	"gorm.io/datatypes"
)

// StoredBlob is one opaque JSON document keyed by session or hand-off key.
type StoredBlob struct {
	Key       string         `json:"key" gorm:"primaryKey;size:128"`
	Data      datatypes.JSON `json:"data" gorm:"type:jsonb;not null"`
	ExpiresAt *time.Time     `json:"expires_at" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (StoredBlob) TableName() string {
	return "assessment_blobs"
}
