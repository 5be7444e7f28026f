package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEntry is an immutable record of one admin mutation. Rows are written
// exclusively by the audit recorder and never updated afterwards. The resource
// reference is loosely typed; orphaned entries after a hard delete are expected.
type AuditEntry struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	TenantID     uint              `gorm:"index;not null" json:"tenant_id"`
	ActorID      uint              `gorm:"index;not null" json:"actor_id"`
	ActorRole    string            `gorm:"size:32;not null" json:"actor_role"`
	ActorEmail   string            `gorm:"size:160" json:"actor_email"`
	ActorName    string            `gorm:"size:128" json:"actor_name"`
	Action       string            `gorm:"size:64;not null;index" json:"action"`
	ResourceType string            `gorm:"size:64;not null;index" json:"resource_type"`
	ResourceID   *uint             `gorm:"index" json:"resource_id"`
	Changes      datatypes.JSONMap `gorm:"type:json" json:"changes"`
	Previous     datatypes.JSONMap `gorm:"type:json" json:"previous"`
	Metadata     datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	Success      bool              `gorm:"index" json:"success"`
	CreatedAt    time.Time         `gorm:"index" json:"created_at"`
}
