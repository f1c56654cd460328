// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/gvr1220/user-management/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	// DefaultPageLimit is used when a search supplies no limit.
	DefaultPageLimit = 10
	// MaxPageLimit caps the page size of a search.
	MaxPageLimit = 100
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// Role is accepted for compatibility but ignored: the first account becomes
// ADMIN and every later one ANONYMOUS.
type RegisterInput struct {
	Email             string  `json:"email" validate:"required,email,max=255"`
	Password          string  `json:"password" validate:"required,min=8,max=72"`
	Nickname          string  `json:"nickname" validate:"omitempty,nickname"`
	Role              string  `json:"role" validate:"omitempty,role"`
	FirstName         *string `json:"first_name" validate:"omitempty,max=100"`
	LastName          *string `json:"last_name" validate:"omitempty,max=100"`
	Bio               *string `json:"bio" validate:"omitempty,max=500"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,url,max=255"`
	IsProfessional    bool    `json:"is_professional"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput is a partial update. Unset patches leave fields untouched;
// explicit null clears nullable profile fields.
type UpdateUserInput struct {
	// Actor is the principal performing the update; role changes need its authority.
	Actor *entity.Principal `json:"-"`

	Email             entity.Patch[string]      `json:"email"`
	Nickname          entity.Patch[string]      `json:"nickname"`
	Password          entity.Patch[string]      `json:"password"`
	Role              entity.Patch[entity.Role] `json:"role"`
	FirstName         entity.Patch[string]      `json:"first_name"`
	LastName          entity.Patch[string]      `json:"last_name"`
	Bio               entity.Patch[string]      `json:"bio"`
	ProfilePictureURL entity.Patch[string]      `json:"profile_picture_url"`
	IsProfessional    entity.Patch[bool]        `json:"is_professional"`
}

// SearchUsersInput combines optional filters with AND, paginated by offset/limit.
type SearchUsersInput struct {
	Nickname       string       `json:"nickname" validate:"max=100"`
	Email          string       `json:"email" validate:"max=255"`
	Role           *entity.Role `json:"role" validate:"omitempty,role"`
	IsProfessional *bool        `json:"is_professional"`
	IsLocked       *bool        `json:"is_locked"`
	RegisteredFrom *time.Time   `json:"registered_from"`
	RegisteredTo   *time.Time   `json:"registered_to"`
	Offset         int          `json:"offset" validate:"gte=0"`
	Limit          int          `json:"limit" validate:"gte=0,lte=100"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user. VerificationEmailSent is
// false when the notifier failed after the user was committed.
type RegisterOutput struct {
	User                  *entity.User
	VerificationEmailSent bool
}

// LoginOutput returns the authenticated user.
type LoginOutput struct {
	User *entity.User
}

// SearchUsersOutput is one page of results plus the size of the whole filtered set.
type SearchUsersOutput struct {
	Users  []*entity.User
	Total  int64
	Offset int
	Limit  int
}

// UserUsecase defines the user lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	VerifyEmail(ctx context.Context, id uuid.UUID, token string) (bool, error)
	ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (bool, error)
	Unlock(ctx context.Context, id uuid.UUID) (bool, error)
	IsAccountLocked(ctx context.Context, email string) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByNickname(ctx context.Context, nickname string) (*entity.User, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	List(ctx context.Context, offset, limit int) (*SearchUsersOutput, error)
	Search(ctx context.Context, input *SearchUsersInput) (*SearchUsersOutput, error)
	Count(ctx context.Context) (int64, error)
}
