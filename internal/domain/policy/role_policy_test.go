package policy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gvr1220/user-management/config"
	"github.com/gvr1220/user-management/internal/domain/entity"
)

func TestRolePolicy_DefaultsToAdmin(t *testing.T) {
	policy := NewRolePolicy(&config.Config{})
	ctx := context.Background()

	assert.True(t, policy.CanChangeRole(ctx, &entity.Principal{UserID: uuid.New(), Role: entity.RoleAdmin}))
	assert.False(t, policy.CanChangeRole(ctx, &entity.Principal{UserID: uuid.New(), Role: entity.RoleManager}))
	assert.False(t, policy.CanChangeRole(ctx, nil))
}

func TestRolePolicy_ConfiguredManagers(t *testing.T) {
	policy := NewRolePolicy(&config.Config{
		Auth: &config.AuthConfig{RoleManagers: []string{"admin", "MANAGER", "bogus"}},
	})
	ctx := context.Background()

	assert.True(t, policy.CanChangeRole(ctx, &entity.Principal{Role: entity.RoleAdmin}))
	assert.True(t, policy.CanChangeRole(ctx, &entity.Principal{Role: entity.RoleManager}))
	assert.False(t, policy.CanChangeRole(ctx, &entity.Principal{Role: entity.RoleAuthenticated}))
	assert.False(t, policy.CanChangeRole(ctx, &entity.Principal{Role: entity.RoleAnonymous}))
}
