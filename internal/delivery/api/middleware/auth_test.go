package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliverycontext "github.com/gvr1220/user-management/internal/delivery/context"
	"github.com/gvr1220/user-management/internal/domain/entity"
	mockSvc "github.com/gvr1220/user-management/internal/mocks/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	principal := &entity.Principal{UserID: uuid.New(), Role: entity.RoleManager}

	t.Run("valid token", func(t *testing.T) {
		validator := mockSvc.NewMockAccessTokenValidator(t)
		validator.EXPECT().ValidateAccessToken("good-token").Return(principal, nil)
		mw := NewAuthMiddleware(validator, discardLogger())

		c, rec := newAuthContext("Bearer good-token")
		var seen *entity.Principal
		err := mw.Authenticate(func(c echo.Context) error {
			seen, _ = deliverycontext.GetPrincipal(c)

			return okHandler(c)
		})(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Same(t, principal, seen)
	})

	t.Run("lowercase scheme", func(t *testing.T) {
		validator := mockSvc.NewMockAccessTokenValidator(t)
		validator.EXPECT().ValidateAccessToken("good-token").Return(principal, nil)
		mw := NewAuthMiddleware(validator, discardLogger())

		c, rec := newAuthContext("bearer good-token")
		require.NoError(t, mw.Authenticate(okHandler)(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	rejected := map[string]string{
		"missing header": "",
		"basic scheme":   "Basic abc",
		"empty token":    "Bearer ",
	}
	for name, header := range rejected {
		t.Run(name, func(t *testing.T) {
			mw := NewAuthMiddleware(mockSvc.NewMockAccessTokenValidator(t), discardLogger())

			c, rec := newAuthContext(header)
			require.NoError(t, mw.Authenticate(okHandler)(c))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("invalid token", func(t *testing.T) {
		validator := mockSvc.NewMockAccessTokenValidator(t)
		validator.EXPECT().ValidateAccessToken("bad").Return(nil, errors.New("signature invalid"))
		mw := NewAuthMiddleware(validator, discardLogger())

		c, rec := newAuthContext("Bearer bad")
		require.NoError(t, mw.Authenticate(okHandler)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotContains(t, rec.Body.String(), "signature invalid")
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	mw := NewAuthMiddleware(mockSvc.NewMockAccessTokenValidator(t), discardLogger())
	requireStaff := mw.RequireRole(entity.RoleAdmin, entity.RoleManager)

	tests := []struct {
		name      string
		principal *entity.Principal
		want      int
	}{
		{name: "admin", principal: &entity.Principal{Role: entity.RoleAdmin}, want: http.StatusNoContent},
		{name: "manager", principal: &entity.Principal{Role: entity.RoleManager}, want: http.StatusNoContent},
		{name: "authenticated", principal: &entity.Principal{Role: entity.RoleAuthenticated}, want: http.StatusForbidden},
		{name: "no principal", principal: nil, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newAuthContext("")
			if tt.principal != nil {
				deliverycontext.SetPrincipal(c, tt.principal)
			}

			require.NoError(t, requireStaff(okHandler)(c))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
