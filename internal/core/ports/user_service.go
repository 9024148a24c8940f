package ports

import (
	"context"

	"github.com/arkelabs/user-management-api/internal/core/domain"
)

// ProfileInput carries profile fields for user creation.
type ProfileInput struct {
	Role      domain.Role
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// CreateUserInput is the pre-validated payload for creating a user.
// Password arrives in plaintext and is hashed by the service before it
// reaches any repository.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	IsActive *bool
	Profile  ProfileInput
}

// UpdateUserInput is a partial user update at the service boundary.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	IsActive *bool
	Profile  *ProfilePatch
}

// UserService implements user management on top of a UserRepository.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) (*domain.User, error)
	Deactivate(ctx context.Context, id string) (*domain.User, error)
	EnsureDefaultAdmin(ctx context.Context, email, password string) error
}
