package dto

import "time"

// EventRequest is the payload for creating or updating an event.
type EventRequest struct {
	Category    string `json:"category" validate:"required,min=2,max=128"`
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=4000"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"start_time" validate:"omitempty,len=5"`
	EndTime     string `json:"end_time" validate:"omitempty,len=5"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=512"`
	IsActive    *bool  `json:"is_active"`
}

// EventResponse is an event as returned to clients.
type EventResponse struct {
	ID          uint      `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventListResponse contains paginated events.
type EventListResponse struct {
	Items      []EventResponse `json:"items"`
	Pagination PaginationMeta  `json:"pagination"`
	CacheHit   bool            `json:"cache_hit,omitempty"`
}

// EventTypeRequest is the payload for creating or updating an event type.
type EventTypeRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=128"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
	IsActive  *bool  `json:"is_active"`
}

// EventTypeResponse is an event type as returned to clients.
type EventTypeResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
