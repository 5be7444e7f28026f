package dto

import "time"

// TenantSettingsRequest updates a tenant's display name and theme document.
// The theme document is validated against the platform theme schema.
type TenantSettingsRequest struct {
	Name  string                 `json:"name" validate:"omitempty,min=2,max=160"`
	Theme map[string]interface{} `json:"theme"`
}

// TenantDomainRequest attaches a hostname to a tenant.
type TenantDomainRequest struct {
	Hostname  string `json:"hostname" validate:"required,fqdn,max=255"`
	IsPrimary bool   `json:"is_primary"`
	IsActive  *bool  `json:"is_active"`
}

// TenantDomainResponse is a tenant domain as returned to clients.
type TenantDomainResponse struct {
	ID        uint      `json:"id"`
	Hostname  string    `json:"hostname"`
	IsPrimary bool      `json:"is_primary"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantResponse is a tenant with its domains and theme settings.
type TenantResponse struct {
	ID        uint                   `json:"id"`
	Name      string                 `json:"name"`
	Slug      string                 `json:"slug"`
	Theme     map[string]interface{} `json:"theme"`
	IsActive  bool                   `json:"is_active"`
	Domains   []TenantDomainResponse `json:"domains"`
	CreatedAt time.Time              `json:"created_at"`
}

// PingResultResponse is one health-check observation.
type PingResultResponse struct {
	DomainID   uint      `json:"domain_id"`
	Hostname   string    `json:"hostname"`
	StatusCode int       `json:"status_code"`
	LatencyMs  *int64    `json:"latency_ms"`
	OK         bool      `json:"ok"`
	CheckedAt  time.Time `json:"checked_at"`
}

// PingSweepResponse reports one full sweep across tenant domains.
type PingSweepResponse struct {
	Checked int                  `json:"checked"`
	Failed  int                  `json:"failed"`
	Results []PingResultResponse `json:"results"`
}
