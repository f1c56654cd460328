package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvr1220/user-management/config"
	"github.com/gvr1220/user-management/internal/domain/entity"
	"github.com/gvr1220/user-management/internal/domain/service"
)

const testSecret = "test-access-secret"

func newTestValidator(t *testing.T) service.AccessTokenValidator {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = testSecret
	validator, err := NewJWTValidator(cfg)
	require.NoError(t, err)

	return validator
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return signed
}

func validClaims(subject, role string) *service.Claims {
	return &service.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(&config.Config{})
	assert.Error(t, err)
}

func TestJWTValidator_ValidToken(t *testing.T) {
	validator := newTestValidator(t)
	userID := uuid.New()

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(userID.String(), "manager"))

	principal, err := validator.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, entity.RoleManager, principal.Role)
}

func TestJWTValidator_Rejects(t *testing.T) {
	validator := newTestValidator(t)
	userID := uuid.New().String()

	expired := validClaims(userID, "ADMIN")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExpiry := validClaims(userID, "ADMIN")
	noExpiry.ExpiresAt = nil

	tests := map[string]string{
		"wrong secret": signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims(userID, "ADMIN")),
		"expired":      signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
		"no expiry":    signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry),
		"bad subject":  signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("not-a-uuid", "ADMIN")),
		"unknown role": signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(userID, "ROOT")),
		"none alg":     signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims(userID, "ADMIN")),
		"not a jwt":    "garbage",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			principal, err := validator.ValidateAccessToken(token)
			assert.Error(t, err)
			assert.Nil(t, principal)
		})
	}
}
