package service

import (
	"context"

	"github.com/gvr1220/user-management/internal/domain/entity"
)

// VerificationNotifier delivers the verification email for a freshly registered user.
// Failures are independent of the already-committed registration.
type VerificationNotifier interface {
	SendVerificationEmail(ctx context.Context, user *entity.User) error
}
