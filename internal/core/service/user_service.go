package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

// UserService implements user management on top of a UserRepository.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Create registers a new user. The email must be unused (case-insensitive),
// the password is hashed before it reaches the repository, and the role
// defaults to the lowest-privilege role when none is given.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, domain.ErrEmailRequired
	}

	exists, err := s.repo.ExistsWithEmail(ctx, input.Email, "")
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailInUse
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Profile.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	user := &domain.User{
		Email:        strings.ToLower(input.Email),
		Username:     input.Username,
		PasswordHash: hash,
		IsActive:     active,
		Profile: domain.Profile{
			Role:      role,
			FirstName: input.Profile.FirstName,
			LastName:  input.Profile.LastName,
			Phone:     input.Profile.Phone,
			Address:   input.Profile.Address,
		},
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role())).Msg("user created")
	return created, nil
}

func (s *UserService) FindAll(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. An email change re-checks uniqueness
// excluding the user itself; a plaintext password in the input is hashed
// here, and profile fields are merged by the repository.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := ports.UserPatch{
		Username: input.Username,
		IsActive: input.IsActive,
		Profile:  input.Profile,
	}

	if input.Email != nil {
		email := strings.ToLower(*input.Email)
		if !strings.EqualFold(email, current.Email) {
			exists, err := s.repo.ExistsWithEmail(ctx, email, id)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if exists {
				return nil, domain.ErrEmailInUse
			}
		}
		patch.Email = &email
	}

	if input.Profile != nil && input.Profile.Role != nil && !input.Profile.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	if input.Password != nil {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	return s.repo.Update(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}
	return nil
}

// Activate re-enables a user. Activating an already-active user is a
// conflict, not a silent no-op.
func (s *UserService) Activate(ctx context.Context, id string) (*domain.User, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate disables a user; their tokens stop working at the next
// validation. Deactivating an already-inactive user is a conflict.
func (s *UserService) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	return s.setActive(ctx, id, false)
}

func (s *UserService) setActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.IsActive == active {
		if active {
			return nil, domain.ErrUserAlreadyActive
		}
		return nil, domain.ErrUserAlreadyInactive
	}

	updated, err := s.repo.Update(ctx, id, ports.UserPatch{IsActive: &active})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Bool("is_active", active).Msg("user activation changed")
	return updated, nil
}

// EnsureDefaultAdmin guarantees an active ADMIN account with the configured
// email exists. It is a find-or-create, safe to run on every startup.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errors.New("default admin email and password must be configured")
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		s.log.Debug().Str("email", email).Msg("default admin already exists")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("lookup default admin: %w", err)
	}

	_, err = s.Create(ctx, ports.CreateUserInput{
		Username: "admin",
		Email:    email,
		Password: password,
		Profile:  ports.ProfileInput{Role: domain.RoleAdmin, FirstName: "admin"},
	})
	if err != nil {
		// Lost a race against a concurrent startup: someone else seeded it.
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil
		}
		return fmt.Errorf("create default admin: %w", err)
	}

	s.log.Info().Str("email", email).Msg("default admin created")
	return nil
}
