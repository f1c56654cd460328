package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: user-management
  log:
    level: debug
http:
  port: 8080
secretKey:
  access: secret
auth:
  maxLoginAttempts: 5
  bcryptCost: 10
verification:
  baseUrl: http://localhost/
`

func writeTestConfig(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfigYAML), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	writeTestConfig(t)

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "user-management", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "secret", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	writeTestConfig(t)
	t.Setenv("AUTH_MAXLOGINATTEMPTS", "3")
	t.Setenv("VERIFICATION_BASEURL", "https://users.example.com/")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, "https://users.example.com/", cfg.Verification.BaseURL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultPasswordHasher, cfg.Auth.PasswordHasher)
	assert.Equal(t, defaultMaxLoginAttempts, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, defaultNicknameMaxAttempts, cfg.Auth.NicknameMaxAttempts)
	assert.Equal(t, defaultDatabaseDriver, cfg.Database.Driver)
	assert.Equal(t, defaultPubSubProvider, cfg.PubSub.Provider)
	assert.NotNil(t, cfg.Verification)
	assert.NotNil(t, cfg.PubSub)
}
