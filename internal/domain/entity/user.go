// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record moved through registration, verification, login and lockout.
type User struct {
	ID                  uuid.UUID  // Assigned at creation, immutable.
	Email               string     // Stored lower-cased; unique case-insensitively.
	Nickname            string     // Unique; caller-supplied or generated.
	PasswordHash        string     // One-way derived credential, never the plaintext.
	Role                Role       // Authorization tier.
	FirstName           *string    // Optional profile data.
	LastName            *string    // Optional profile data.
	Bio                 *string    // Optional profile data.
	ProfilePictureURL   *string    // Optional profile data.
	IsProfessional      bool       // Independent of Role.
	EmailVerified       bool       // Set once the verification token is redeemed.
	VerificationToken   *string    // Non-nil only while verification is pending.
	FailedLoginAttempts int        // Consecutive failed logins since the last reset.
	IsLocked            bool       // Set when FailedLoginAttempts reaches the lockout threshold.
	LastLoginAt         *time.Time // Time of the last successful login.
	CreatedAt           time.Time  // Immutable.
	UpdatedAt           time.Time  // Bumped on every persisted change.
}

// HasPendingVerification reports whether a verification token is waiting to be redeemed.
func (u *User) HasPendingVerification() bool {
	return !u.EmailVerified && u.VerificationToken != nil && *u.VerificationToken != ""
}
