// Package memory provides an in-memory UserRepository. It is deterministic
// and dependency-free, which makes it the reference implementation for
// tests and local development; production deployments use the mongo store.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

// UserRepository keeps users in a mutex-guarded slice. The lock makes each
// operation atomic; in particular the email-uniqueness check and the insert
// in Create happen in one critical section, so two concurrent creates with
// the same email cannot both succeed.
type UserRepository struct {
	mu    sync.RWMutex
	users []*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, "") {
		return nil, domain.ErrEmailInUse
	}

	now := time.Now().UTC()
	stored := *user
	stored.ID = uuid.NewString()
	stored.Email = strings.ToLower(user.Email)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.users = append(r.users, &stored)

	out := stored
	return &out, nil
}

func (r *UserRepository) FindAll(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if matches(u, filter) {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID != id {
			continue
		}

		if patch.Email != nil {
			email := strings.ToLower(*patch.Email)
			if !strings.EqualFold(email, u.Email) && r.emailTaken(email, id) {
				return nil, domain.ErrEmailInUse
			}
			u.Email = email
		}
		if patch.Username != nil {
			u.Username = *patch.Username
		}
		if patch.PasswordHash != nil {
			u.PasswordHash = *patch.PasswordHash
		}
		if patch.IsActive != nil {
			u.IsActive = *patch.IsActive
		}
		if patch.Profile != nil {
			mergeProfile(&u.Profile, patch.Profile)
		}
		u.UpdatedAt = time.Now().UTC()

		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) ExistsWithEmail(_ context.Context, email, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emailTaken(email, excludeID), nil
}

// emailTaken must be called with the lock held.
func (r *UserRepository) emailTaken(email, excludeID string) bool {
	if email == "" {
		return false
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) && u.ID != excludeID {
			return true
		}
	}
	return false
}

func mergeProfile(dst *domain.Profile, patch *ports.ProfilePatch) {
	if patch.Role != nil {
		dst.Role = *patch.Role
	}
	if patch.FirstName != nil {
		dst.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		dst.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		dst.Phone = *patch.Phone
	}
	if patch.Address != nil {
		dst.Address = *patch.Address
	}
}

func matches(u *domain.User, f ports.UserFilter) bool {
	if f.Email != "" && !containsFold(u.Email, f.Email) {
		return false
	}
	if f.Username != "" && !containsFold(u.Username, f.Username) {
		return false
	}
	if f.Role != "" && u.Profile.Role != f.Role {
		return false
	}
	if f.IsActive != nil && u.IsActive != *f.IsActive {
		return false
	}
	if f.ProfileName != "" {
		full := strings.TrimSpace(u.Profile.FirstName + " " + u.Profile.LastName)
		if !containsFold(full, f.ProfileName) {
			return false
		}
	}
	if f.SearchTerm != "" {
		full := u.Profile.FirstName + " " + u.Profile.LastName
		if !containsFold(u.Email, f.SearchTerm) &&
			!containsFold(u.Username, f.SearchTerm) &&
			!containsFold(full, f.SearchTerm) {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
