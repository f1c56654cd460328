package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gvr1220/user-management/internal/delivery/api/response"
	deliverycontext "github.com/gvr1220/user-management/internal/delivery/context"
	"github.com/gvr1220/user-management/internal/domain/entity"
	"github.com/gvr1220/user-management/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware authenticates access tokens and enforces roles.
type AuthMiddleware struct {
	validator service.AccessTokenValidator
	logger    *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(validator service.AccessTokenValidator, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, logger: logger}
}

// Authenticate resolves the bearer token to a principal and stores it on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		principal, err := m.validator.ValidateAccessToken(strings.TrimSpace(authHeader[len(bearerPrefix):]))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Debug("Access token rejected",
				slog.String("reason", err.Error()),
			)

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// RequireRole allows the request only when the principal holds one of roles.
// It must be used after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c)
			if !ok {
				return response.Unauthorized(c, "MISSING_PRINCIPAL", "Authentication required")
			}

			if !allowed.Contains(principal.Role) {
				return response.Error(c, http.StatusForbidden, "FORBIDDEN", "Permission denied", nil)
			}

			return next(c)
		}
	}
}
