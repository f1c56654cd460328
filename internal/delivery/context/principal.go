package context

import (
	"context"

	"github.com/gvr1220/user-management/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// SetPrincipal stores the authenticated principal on both echo.Context and the request context.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(string(keyPrincipal), principal)
	c.SetRequest(c.Request().WithContext(WithPrincipal(c.Request().Context(), principal)))
}

// GetPrincipal extracts the authenticated principal from echo.Context.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	principal, ok := c.Get(string(keyPrincipal)).(*entity.Principal)

	return principal, ok && principal != nil
}

// WithPrincipal returns a new context carrying the principal.
func WithPrincipal(ctx context.Context, principal *entity.Principal) context.Context {
	return context.WithValue(ctx, keyPrincipal, principal)
}

// PrincipalFromContext extracts the principal from standard context.Context.
func PrincipalFromContext(ctx context.Context) (*entity.Principal, bool) {
	principal, ok := ctx.Value(keyPrincipal).(*entity.Principal)

	return principal, ok && principal != nil
}
