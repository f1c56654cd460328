package postgres

import (
	"context"

	"github.com/gvr1220/user-management/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates the users table and its case-insensitive email index.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.UserModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate users table")
	}

	if err := db.WithContext(ctx).Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email_lower ON users (lower(email))",
	).Error; err != nil {
		return errors.Wrap(err, "failed to create case-insensitive email index")
	}

	return nil
}
