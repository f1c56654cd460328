// Package handler contains the HTTP handlers for the API delivery.
package handler

import (
	"time"

	"github.com/gvr1220/user-management/internal/domain/entity"

	"github.com/google/uuid"
)

// UserResponse is the public view of a user; credentials and tokens are never serialized.
type UserResponse struct {
	ID                  uuid.UUID   `json:"id"`
	Email               string      `json:"email"`
	Nickname            string      `json:"nickname"`
	Role                entity.Role `json:"role"`
	FirstName           *string     `json:"first_name"`
	LastName            *string     `json:"last_name"`
	Bio                 *string     `json:"bio"`
	ProfilePictureURL   *string     `json:"profile_picture_url"`
	IsProfessional      bool        `json:"is_professional"`
	EmailVerified       bool        `json:"email_verified"`
	FailedLoginAttempts int         `json:"failed_login_attempts"`
	IsLocked            bool        `json:"is_locked"`
	LastLoginAt         *time.Time  `json:"last_login_at"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:                  user.ID,
		Email:               user.Email,
		Nickname:            user.Nickname,
		Role:                user.Role,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		Bio:                 user.Bio,
		ProfilePictureURL:   user.ProfilePictureURL,
		IsProfessional:      user.IsProfessional,
		EmailVerified:       user.EmailVerified,
		FailedLoginAttempts: user.FailedLoginAttempts,
		IsLocked:            user.IsLocked,
		LastLoginAt:         user.LastLoginAt,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	return out
}
