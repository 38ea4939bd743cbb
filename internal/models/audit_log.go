package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only trail of admin actions.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserEmail  string         `gorm:"size:255" json:"user_email"`
	Action     string         `gorm:"size:100;not null;index" json:"action"`
	EntityType string         `gorm:"size:100;index" json:"entity_type"`
	EntityID   uint           `json:"entity_id"`
	Details    datatypes.JSON `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
