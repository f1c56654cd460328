// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"github.com/gvr1220/user-management/internal/domain/entity"

	"github.com/google/uuid"
)

// UserFilter is the predicate set shared by Search and Count. Zero-valued
// fields do not constrain the result; all set fields combine with AND.
type UserFilter struct {
	Nickname       string       // Case-insensitive substring.
	Email          string       // Case-insensitive substring.
	Role           *entity.Role // Exact match.
	IsProfessional *bool        // Exact match.
	IsLocked       *bool        // Exact match.
	CreatedFrom    *time.Time   // Inclusive lower bound on CreatedAt.
	CreatedTo      *time.Time   // Inclusive upper bound on CreatedAt.
}

// Page is offset/limit pagination.
type Page struct {
	Offset int
	Limit  int
}

// UserChanges is a partial update; only set patches are written.
type UserChanges struct {
	Email               entity.Patch[string]
	Nickname            entity.Patch[string]
	PasswordHash        entity.Patch[string]
	Role                entity.Patch[entity.Role]
	FirstName           entity.Patch[string]
	LastName            entity.Patch[string]
	Bio                 entity.Patch[string]
	ProfilePictureURL   entity.Patch[string]
	IsProfessional      entity.Patch[bool]
	EmailVerified       entity.Patch[bool]
	VerificationToken   entity.Patch[string]
	FailedLoginAttempts entity.Patch[int]
	IsLocked            entity.Patch[bool]
}

// IsEmpty reports whether no field is set.
func (c UserChanges) IsEmpty() bool {
	return !c.Email.IsSet() && !c.Nickname.IsSet() && !c.PasswordHash.IsSet() &&
		!c.Role.IsSet() && !c.FirstName.IsSet() && !c.LastName.IsSet() &&
		!c.Bio.IsSet() && !c.ProfilePictureURL.IsSet() && !c.IsProfessional.IsSet() &&
		!c.EmailVerified.IsSet() && !c.VerificationToken.IsSet() &&
		!c.FailedLoginAttempts.IsSet() && !c.IsLocked.IsSet()
}

// UserRepository defines the standard operations for user persistence.
// Lookups of a missing user return errors.ErrUserNotFound from the domain errors package.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByIDForUpdate retrieves a user and row-locks it for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByNickname retrieves a user by exact nickname.
	FindByNickname(ctx context.Context, nickname string) (*entity.User, error)

	// Search returns one page of users matching filter, ordered by creation time.
	Search(ctx context.Context, filter UserFilter, page Page) ([]*entity.User, error)

	// Count returns the number of users matching filter.
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// Create persists a new user. Email or nickname collisions return
	// ErrDuplicateEmail or ErrDuplicateNickname.
	Create(ctx context.Context, user *entity.User) error

	// Update applies changes and returns the updated user.
	Update(ctx context.Context, id uuid.UUID, changes UserChanges) (*entity.User, error)

	// Delete hard-deletes a user, reporting whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// LockRegistration serializes registrations until the surrounding transaction ends.
	LockRegistration(ctx context.Context) error

	// RecordFailedLogin increments the failed-login counter of an unlocked user
	// in a single statement and locks the account when the counter reaches threshold.
	// ErrUserNotFound is returned when no unlocked user matched.
	RecordFailedLogin(ctx context.Context, id uuid.UUID, threshold int) (*entity.User, error)

	// RecordSuccessfulLogin zeroes the counter and stamps LastLoginAt on an
	// unlocked user. ErrUserNotFound is returned when no unlocked user matched.
	RecordSuccessfulLogin(ctx context.Context, id uuid.UUID, at time.Time) (*entity.User, error)
}
