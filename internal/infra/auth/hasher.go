package auth

import (
	"github.com/gvr1220/user-management/config"
	"github.com/gvr1220/user-management/internal/domain/constants"
	"github.com/gvr1220/user-management/internal/domain/service"
	"github.com/gvr1220/user-management/internal/errors"
)

// NewPasswordHasher selects the hasher named by auth.passwordHasher.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	name := constants.PasswordHasherBcrypt
	cost := 0
	if cfg.Auth != nil {
		if cfg.Auth.PasswordHasher != "" {
			name = cfg.Auth.PasswordHasher
		}
		cost = cfg.Auth.BcryptCost
	}

	switch name {
	case constants.PasswordHasherBcrypt:
		return NewBcryptHasherWithCost(cost), nil
	case constants.PasswordHasherArgon2id:
		return NewArgon2Hasher(DefaultArgon2Params()), nil
	default:
		return nil, errors.Errorf("unknown password hasher: %s", name)
	}
}
