package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tenant represents a single restaurant site owning its own content and users.
type Tenant struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:160;not null" json:"name"`
	Slug      string            `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Theme     datatypes.JSONMap `gorm:"type:json" json:"theme"`
	IsActive  bool              `gorm:"index;default:true" json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Domains []TenantDomain `gorm:"foreignKey:TenantID" json:"domains,omitempty"`
}

// TenantDomain maps a public hostname onto a tenant site.
type TenantDomain struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"index;not null" json:"tenant_id"`
	Hostname  string    `gorm:"size:255;uniqueIndex;not null" json:"hostname"`
	IsPrimary bool      `json:"is_primary"`
	IsActive  bool      `gorm:"index;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
