package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7 assigned by the application.
// Emails are stored lower-cased; a unique index on lower(email) is created by the migration.
type UserModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email               string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Nickname            string     `gorm:"type:varchar(50);not null;uniqueIndex:uq_users_nickname"`
	PasswordHash        string     `gorm:"type:varchar(255);not null"`
	Role                string     `gorm:"type:varchar(20);not null;index"`
	FirstName           *string    `gorm:"type:varchar(100)"`
	LastName            *string    `gorm:"type:varchar(100)"`
	Bio                 *string    `gorm:"type:text"`
	ProfilePictureURL   *string    `gorm:"type:varchar(255)"`
	IsProfessional      bool       `gorm:"not null;default:false;index"`
	EmailVerified       bool       `gorm:"not null;default:false"`
	VerificationToken   *string    `gorm:"type:varchar(255)"`
	FailedLoginAttempts int        `gorm:"not null;default:0"`
	IsLocked            bool       `gorm:"not null;default:false;index"`
	LastLoginAt         *time.Time
	CreatedAt           time.Time `gorm:"not null;index"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
