package models

import "time"

// DomainPing stores one health-check observation for a tenant domain. A status
// code of zero and nil latency mark a network-level failure.
type DomainPing struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"index;not null" json:"tenant_id"`
	DomainID   uint      `gorm:"index;not null" json:"domain_id"`
	Hostname   string    `gorm:"size:255;not null" json:"hostname"`
	StatusCode int       `json:"status_code"`
	LatencyMs  *int64    `json:"latency_ms"`
	OK         bool      `gorm:"index" json:"ok"`
	CheckedAt  time.Time `gorm:"index" json:"checked_at"`
}
