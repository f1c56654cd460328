package auth

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/gvr1220/user-management/internal/domain/service"
	"github.com/gvr1220/user-management/internal/errors"
)

const verificationTokenBytes = 32

type randomTokenGenerator struct {
	size int
}

// NewTokenGenerator creates a generator of URL-safe verification tokens.
func NewTokenGenerator() service.TokenGenerator {
	return &randomTokenGenerator{size: verificationTokenBytes}
}

// Generate returns base64url-encoded random bytes without padding.
func (g *randomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
