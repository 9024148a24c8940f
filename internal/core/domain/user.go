package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTooManyAttempts     = errors.New("too many failed login attempts")
	ErrForbidden           = errors.New("access forbidden")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailInUse          = errors.New("email already in use")
	ErrEmailRequired       = errors.New("email is required")
	ErrInvalidRole         = errors.New("invalid role")
	ErrUserAlreadyActive   = errors.New("user is already active")
	ErrUserAlreadyInactive = errors.New("user is already inactive")
)

// Profile holds the mutable, non-credential attributes of a user.
type Profile struct {
	Role      Role   `json:"role" bson:"role"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string `json:"address,omitempty" bson:"address,omitempty"`
}

// User is the identity record: credentials, profile and activation state.
// The password hash never crosses the API boundary; the json tag guarantees
// it is dropped from any serialized form.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role returns the user's role, falling back to the lowest-privilege role
// when the profile carries an unknown value.
func (u *User) Role() Role {
	if u.Profile.Role.IsValid() {
		return u.Profile.Role
	}
	return DefaultRole
}
