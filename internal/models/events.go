package models

import "time"

// Event is a dated happening published on a tenant site. Hard-deleted.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"index;not null" json:"tenant_id"`
	Category    string    `gorm:"size:128;not null;index" json:"category"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	StartTime   string    `gorm:"size:8" json:"start_time"`
	EndTime     string    `gorm:"size:8" json:"end_time"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	IsActive    bool      `gorm:"index;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventType categorises events. Soft-deleted only: deactivation flips IsActive,
// the row itself is never removed.
type EventType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"index;not null" json:"tenant_id"`
	Name      string    `gorm:"size:128;not null;index" json:"name"`
	SortOrder int       `gorm:"index" json:"sort_order"`
	IsActive  bool      `gorm:"index;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
