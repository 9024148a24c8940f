package ports

import (
	"context"

	"github.com/arkelabs/user-management-api/internal/core/domain"
)

// UserFilter narrows FindAll results. All fields are optional; string
// matches are partial and case-insensitive. SearchTerm matches across
// email, username and profile names.
type UserFilter struct {
	Email       string
	Username    string
	ProfileName string
	Role        domain.Role
	IsActive    *bool
	SearchTerm  string
}

// ProfilePatch is a partial profile update. Nil fields are left untouched;
// the patch is merged field-wise into the existing profile, never replacing
// it wholesale.
type ProfilePatch struct {
	Role      *domain.Role
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
}

// UserPatch is a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Email        *string
	Username     *string
	PasswordHash *string
	IsActive     *bool
	Profile      *ProfilePatch
}

// UserRepository is the persistence contract for identity records.
//
// Lookups return domain.ErrUserNotFound when no record matches; email
// comparisons are case-insensitive everywhere. Each call is atomic: no
// partial write is ever observable, and email-uniqueness enforcement on
// Create must happen in the same critical section as the insert.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsWithEmail(ctx context.Context, email, excludeID string) (bool, error)
}
