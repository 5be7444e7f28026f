package models

import "time"

// Special is a time-windowed promotion shown on the public site.
type Special struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"index;not null" json:"tenant_id"`
	Name        string    `gorm:"size:160;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	StartDate   time.Time `gorm:"index;not null" json:"start_date"`
	EndDate     time.Time `gorm:"index;not null" json:"end_date"`
	IsRecurring bool      `json:"is_recurring"`
	IsActive    bool      `gorm:"index;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SpecialDay records an exceptional opening schedule or closure for one date.
// At most one row per tenant and date.
type SpecialDay struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;uniqueIndex:idx_special_day_tenant_date" json:"tenant_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_special_day_tenant_date" json:"date"`
	Reason    string    `gorm:"size:255" json:"reason"`
	OpensAt   string    `gorm:"size:8" json:"opens_at"`
	ClosesAt  string    `gorm:"size:8" json:"closes_at"`
	IsClosed  bool      `json:"is_closed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
