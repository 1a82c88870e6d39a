package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef-secret"

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("DEVCONNECT_AUTH_SIGNING_KEY", testKey)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 24, cfg.GetTokenExpiration())
	assert.Equal(t, "header:x-auth-token", cfg.GetTokenLookup())
	assert.Equal(t, devconnect.DefaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "https://api.github.com", cfg.Github.APIURL)
	assert.Equal(t, testKey, cfg.GetSigningKey())
	assert.Equal(t, devconnect.DefaultContextKey, cfg.GetContextKey())
	assert.Empty(t, cfg.GetAuthScheme())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
debug: true
server:
  address: ":8080"
  shutdown_timeout: 3s
auth:
  signing_key: "from-file-signing-key"
  token_expiration: 2
  issuer: devconnect
  audience:
    - web
database:
  driver: postgres
  dsn: postgres://localhost/devconnect
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DEVCONNECT_SERVER_ADDRESS", ":9090")
	t.Setenv("DEVCONNECT_AUTH_VERIFY_USER_EXISTS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, ":9090", cfg.Server.Address, "env overrides file")
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "from-file-signing-key", cfg.GetSigningKey())
	assert.Equal(t, 2, cfg.GetTokenExpiration())
	assert.Equal(t, "devconnect", cfg.GetIssuer())
	assert.Equal(t, []string{"web"}, cfg.GetAudience())
	assert.True(t, cfg.Auth.VerifyUserExists)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	t.Setenv("DEVCONNECT_AUTH_SIGNING_KEY", testKey)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Address)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryBadInput))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{
			name:   "missing signing key",
			mutate: func(c *Config) { c.Auth.SigningKey = "" },
		},
		{
			name:   "short signing key",
			mutate: func(c *Config) { c.Auth.SigningKey = "short" },
		},
		{
			name:   "zero expiration",
			mutate: func(c *Config) { c.Auth.TokenExpiration = 0 },
		},
		{
			name:   "unknown driver",
			mutate: func(c *Config) { c.Database.Driver = "oracle" },
		},
		{
			name:   "bad token lookup",
			mutate: func(c *Config) { c.Auth.TokenLookup = "body:token" },
		},
		{
			name:   "bcrypt cost too high",
			mutate: func(c *Config) { c.Auth.BcryptCost = 40 },
		},
		{
			name:   "mongo without database name",
			mutate: func(c *Config) { c.Database.Driver = "mongo"; c.Database.Name = "" },
		},
		{
			name:   "multiple token sources",
			mutate: func(c *Config) { c.Auth.TokenLookup = "header:x-auth-token,query:token" },
			valid:  true,
		},
		{
			name:   "defaults with key",
			mutate: func(c *Config) {},
			valid:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Auth.SigningKey = testKey
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}
