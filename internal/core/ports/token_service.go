package ports

import "github.com/arkelabs/user-management-api/internal/core/domain"

// Claims is the decoded payload of a signed token.
type Claims struct {
	Subject string
	Email   string
	Role    domain.Role
}

// TokenService issues and verifies the two token kinds. Access and refresh
// tokens are signed with independent secrets and lifetimes.
//
// ValidateRefresh deliberately returns only the subject id: a refresh token
// must never be trusted for role or email decisions, so callers re-resolve
// the identity before minting new tokens. Both validators reject with
// domain.ErrInvalidToken regardless of the underlying cause.
type TokenService interface {
	IssuePair(user *domain.User) (*TokenPair, error)
	ValidateAccess(token string) (*Claims, error)
	ValidateRefresh(token string) (string, error)
}
