package dto

import "time"

// SpecialRequest is the payload for creating or updating a special.
type SpecialRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=160"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	IsRecurring bool   `json:"is_recurring"`
	IsActive    *bool  `json:"is_active"`
}

// SpecialResponse is a special as returned to clients.
type SpecialResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsRecurring bool      `json:"is_recurring"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SpecialListResponse contains paginated specials.
type SpecialListResponse struct {
	Items      []SpecialResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
	CacheHit   bool              `json:"cache_hit,omitempty"`
}

// SpecialDayRequest is the payload for creating or updating a special day.
type SpecialDayRequest struct {
	Date     string `json:"date" validate:"required"`
	Reason   string `json:"reason" validate:"omitempty,max=255"`
	OpensAt  string `json:"opens_at" validate:"omitempty,len=5"`
	ClosesAt string `json:"closes_at" validate:"omitempty,len=5"`
	IsClosed bool   `json:"is_closed"`
}

// SpecialDayResponse is a special day as returned to clients.
type SpecialDayResponse struct {
	ID        uint      `json:"id"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason"`
	OpensAt   string    `json:"opens_at"`
	ClosesAt  string    `json:"closes_at"`
	IsClosed  bool      `json:"is_closed"`
	CreatedAt time.Time `json:"created_at"`
}
