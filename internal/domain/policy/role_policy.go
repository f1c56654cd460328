// Package policy holds authorization rules applied by the user use cases.
package policy

import (
	"context"

	"github.com/gvr1220/user-management/config"
	"github.com/gvr1220/user-management/internal/domain/entity"
	"github.com/gvr1220/user-management/internal/domain/service"
)

type rolePolicy struct {
	managers entity.Roles
}

// NewRolePolicy builds the role-change policy from auth.roleManagers; ADMIN when unset.
func NewRolePolicy(cfg *config.Config) service.RolePolicy {
	var managers entity.Roles
	if cfg != nil && cfg.Auth != nil {
		managers = entity.RolesFromStrings(cfg.Auth.RoleManagers)
	}
	if len(managers) == 0 {
		managers = entity.Roles{entity.RoleAdmin}
	}

	return &rolePolicy{managers: managers}
}

// CanChangeRole reports whether actor holds one of the managing roles.
func (p *rolePolicy) CanChangeRole(_ context.Context, actor *entity.Principal) bool {
	if actor == nil {
		return false
	}

	return p.managers.Contains(actor.Role)
}
