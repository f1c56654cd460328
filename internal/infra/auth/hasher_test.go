package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvr1220/user-management/config"
)

func TestNewPasswordHasher(t *testing.T) {
	tests := []struct {
		name    string
		auth    *config.AuthConfig
		want    any
		wantErr bool
	}{
		{name: "nil auth defaults to bcrypt", auth: nil, want: &bcryptHasher{}},
		{name: "bcrypt", auth: &config.AuthConfig{PasswordHasher: "bcrypt", BcryptCost: 5}, want: &bcryptHasher{}},
		{name: "argon2id", auth: &config.AuthConfig{PasswordHasher: "argon2id"}, want: &argon2Hasher{}},
		{name: "unknown", auth: &config.AuthConfig{PasswordHasher: "md5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher, err := NewPasswordHasher(&config.Config{Auth: tt.auth})
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, hasher)
		})
	}
}
