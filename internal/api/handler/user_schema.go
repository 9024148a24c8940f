package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type profileRequest struct {
	Role      string `json:"role"       validate:"omitempty,oneof=USER MODERATOR SUPPORT ADMIN"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type createUserRequest struct {
	Username string         `json:"username"  validate:"required"`
	Email    string         `json:"email"     validate:"required,email"`
	Password string         `json:"password"  validate:"required,min=6"`
	IsActive *bool          `json:"is_active"`
	Profile  profileRequest `json:"profile"`
}

// updateUserRequest is a partial update: absent fields stay untouched,
// which is why every field is a pointer.
type updateUserRequest struct {
	Username *string               `json:"username"`
	Email    *string               `json:"email"    validate:"omitempty,email"`
	Password *string               `json:"password" validate:"omitempty,min=6"`
	IsActive *bool                 `json:"is_active"`
	Profile  *updateProfileRequest `json:"profile"`
}

type updateProfileRequest struct {
	Role      *string `json:"role"       validate:"omitempty,oneof=USER MODERATOR SUPPORT ADMIN"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// --- Response types ---
//
// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes, and so the password hash can never leak by accident.

type profileResponse struct {
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

type userResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Username  string          `json:"username"`
	IsActive  bool            `json:"is_active"`
	Profile   profileResponse `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type loginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
