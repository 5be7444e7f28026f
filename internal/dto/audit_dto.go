package dto

import "time"

// AuditListRequest narrows audit log reads. Category maps to a set of
// concrete resource types; IncludeFailed widens the default success-only view.
type AuditListRequest struct {
	Page          int
	PageSize      int
	Category      string
	ResourceType  string
	Action        string
	ActorID       uint
	IncludeFailed bool
}

// AuditEntryResponse is one immutable audit row for display.
type AuditEntryResponse struct {
	ID           uint                   `json:"id"`
	ActorID      uint                   `json:"actor_id"`
	ActorRole    string                 `json:"actor_role"`
	ActorEmail   string                 `json:"actor_email"`
	ActorName    string                 `json:"actor_name"`
	Action       string                 `json:"action"`
	ResourceType string                 `json:"resource_type"`
	ResourceID   *uint                  `json:"resource_id"`
	Changes      map[string]interface{} `json:"changes"`
	Previous     map[string]interface{} `json:"previous,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	Success      bool                   `json:"success"`
	CreatedAt    time.Time              `json:"created_at"`
}

// AuditListResponse contains paginated audit entries, newest first.
type AuditListResponse struct {
	Items      []AuditEntryResponse `json:"items"`
	Pagination PaginationMeta       `json:"pagination"`
}
