package service

import (
	"context"

	"github.com/gvr1220/user-management/internal/domain/entity"
)

// RolePolicy decides whether an acting principal may change user roles.
type RolePolicy interface {
	CanChangeRole(ctx context.Context, actor *entity.Principal) bool
}
