package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gvr1220/user-management/config"
	"github.com/gvr1220/user-management/internal/domain/entity"
	"github.com/gvr1220/user-management/internal/domain/service"
	"github.com/gvr1220/user-management/internal/errors"
)

// jwtValidator checks HS256 access tokens carrying the user id as "sub" and a "role" claim.
type jwtValidator struct {
	accessSecret []byte
}

// NewJWTValidator is the constructor for jwtValidator.
func NewJWTValidator(cfg *config.Config) (service.AccessTokenValidator, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("access token secret must be provided")
	}

	return &jwtValidator{accessSecret: []byte(cfg.SecretKey.Access)}, nil
}

// ValidateAccessToken parses the token and resolves it to a principal.
func (v *jwtValidator) ValidateAccessToken(tokenString string) (*entity.Principal, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return v.accessSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject claim")
	}

	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return nil, errors.Errorf("invalid role claim %q", claims.Role)
	}

	return &entity.Principal{UserID: userID, Role: role}, nil
}
