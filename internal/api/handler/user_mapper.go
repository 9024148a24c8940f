package handler

import (
	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
		Profile: ports.ProfileInput{
			Role:      domain.Role(req.Profile.Role),
			FirstName: req.Profile.FirstName,
			LastName:  req.Profile.LastName,
			Phone:     req.Profile.Phone,
			Address:   req.Profile.Address,
		},
	}
}

func toUpdateInput(req updateUserRequest) ports.UpdateUserInput {
	input := ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
	}
	if req.Profile != nil {
		patch := &ports.ProfilePatch{
			FirstName: req.Profile.FirstName,
			LastName:  req.Profile.LastName,
			Phone:     req.Profile.Phone,
			Address:   req.Profile.Address,
		}
		if req.Profile.Role != nil {
			role := domain.Role(*req.Profile.Role)
			patch.Role = &role
		}
		input.Profile = patch
	}
	return input
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		IsActive: u.IsActive,
		Profile: profileResponse{
			Role:      string(u.Role()),
			FirstName: u.Profile.FirstName,
			LastName:  u.Profile.LastName,
			Phone:     u.Profile.Phone,
			Address:   u.Profile.Address,
		},
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func toUserListResponse(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}
