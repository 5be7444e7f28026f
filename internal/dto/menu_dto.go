package dto

import "time"

// MenuCategoryRequest is the payload for creating or updating a menu category.
type MenuCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=128"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
	IsActive    *bool  `json:"is_active"`
}

// MenuCategoryResponse is a category as returned to admin clients.
type MenuCategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuItemRequest is the payload for creating or updating a menu item.
type MenuItemRequest struct {
	Category    string `json:"category" validate:"required,min=2,max=128"`
	Name        string `json:"name" validate:"required,min=2,max=160"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Price       Amount `json:"price"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=512"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
	IsActive    *bool  `json:"is_active"`
}

// MenuItemResponse is a menu item as returned to admin clients.
type MenuItemResponse struct {
	ID          uint      `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuItemListResponse contains paginated menu items.
type MenuItemListResponse struct {
	Items      []MenuItemResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// ReorderRequest carries a consolidated reorder event. The per-item sort
// orders are persisted by the individual update calls; this payload is only
// recorded in the audit trail.
type ReorderRequest struct {
	Category string `json:"category" validate:"omitempty,max=128"`
	OldOrder []uint `json:"old_order" validate:"required,min=1,dive,gt=0"`
	NewOrder []uint `json:"new_order" validate:"required,min=1,dive,gt=0"`
}

// PublicMenuCategory groups sanitized items for the public menu page.
type PublicMenuCategory struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Items       []MenuItemResponse `json:"items"`
}

// PublicMenuResponse is the full public menu for one tenant.
type PublicMenuResponse struct {
	Tenant     string               `json:"tenant"`
	Categories []PublicMenuCategory `json:"categories"`
	CacheHit   bool                 `json:"cache_hit"`
}
