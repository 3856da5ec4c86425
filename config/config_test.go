package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, 10, cfg.AuthRateLimit)
	assert.Equal(t, 5, cfg.PaymentRateLimit)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxAvatarBytes)
	assert.False(t, cfg.Production())
	assert.False(t, cfg.CloudinaryEnabled())
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/nourishnet")
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_RATE_LIMIT", "3")
	t.Setenv("PAYMENT_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, 3, cfg.AuthRateLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.PaymentDelay)
}

func TestValidate(t *testing.T) {
	base := Config{JWTSecret: "a", JWTRefreshSecret: "b", DBDriver: "sqlite"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid"},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "must be set"},
		{name: "same secrets", mutate: func(c *Config) { c.JWTRefreshSecret = "a" }, wantErr: "must differ"},
		{name: "postgres without url", mutate: func(c *Config) { c.DBDriver = "postgres" }, wantErr: "DATABASE_URL"},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
