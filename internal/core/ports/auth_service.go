package ports

import (
	"context"

	"github.com/arkelabs/user-management-api/internal/core/domain"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService implements the login and refresh flows.
//
// Login failures of any kind (unknown email, wrong password, inactive user,
// internal fault) surface as domain.ErrInvalidCredentials so the caller
// cannot distinguish them. Refresh expects a subject id already extracted
// from a validated refresh token; it re-resolves the identity so new tokens
// carry the user's current role and email, never the ones at issuance time.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, subjectID string) (*TokenPair, error)
}

// LoginThrottle limits failed login attempts per email. Implementations
// must be safe for concurrent use; a nil throttle disables the check.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
