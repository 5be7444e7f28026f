package dto

import "time"

// UserCreateRequest is the payload for provisioning a new user account.
type UserCreateRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=128"`
	Email    string `json:"email" validate:"required,email,max=160"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required,min=10,max=72"`
}

// UserUpdateRequest changes a user's role or active flag. Only an actor with
// a strictly higher-privileged role may apply it.
type UserUpdateRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=128"`
	Role     string `json:"role" validate:"omitempty"`
	IsActive *bool  `json:"is_active"`
}

// UserResponse is a user as returned to admin clients.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse contains paginated users.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// LoginRequest is the credential payload for the token endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the signed access token and actor profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
