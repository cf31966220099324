package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "accounts", cfg.DynamoTables.Accounts)
	assert.Equal(t, "users", cfg.DynamoTables.Users)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
	assert.Equal(t, 3*time.Second, cfg.Toast.DefaultDuration)
	assert.Equal(t, 300*time.Millisecond, cfg.Toast.Linger)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TOAST_DEFAULT_DURATION", "5s")
	t.Setenv("ADMIN_EMAIL", "root@bidhub.test")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Toast.DefaultDuration)
	assert.Equal(t, "root@bidhub.test", cfg.Admin.Email)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.TrustProxy)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("TOAST_LINGER", "soon")

	_, err := Load()
	assert.Error(t, err)
}
