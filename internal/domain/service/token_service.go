package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/gvr1220/user-management/internal/domain/entity"
)

// Claims defines the claims carried by access tokens minted by the identity issuer.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AccessTokenValidator resolves an access token to the acting principal.
// Tokens are issued elsewhere; this service only validates them.
type AccessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*entity.Principal, error)
}
