package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("SESSION_SIGNING_KEY", "test-key")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModeOIDC, cfg.Auth.Mode)
	assert.Equal(t, 120*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.FreshLoginWindow)
	assert.Equal(t, 3*time.Second, cfg.Auth.VerifyTimeout)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
}

func TestParseSigningKeyRequired(t *testing.T) {
	var cfg AppConfig
	assert.Error(t, env.Parse(&cfg))
}

func TestAuthModeUnmarshal(t *testing.T) {
	tests := []struct {
		value   string
		want    AuthMode
		wantErr bool
	}{
		{value: "oidc", want: AuthModeOIDC},
		{value: "OIDC", want: AuthModeOIDC},
		{value: "static", want: AuthModeStatic},
		{value: "oauth", wantErr: true},
		{value: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.value))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{
		Auth: AuthConfig{
			SessionTTL:       -time.Hour,
			FreshLoginWindow: 0,
			VerifyTimeout:    -1,
		},
	}
	cfg.Sanitize()

	assert.Equal(t, 120*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.FreshLoginWindow)
	assert.Equal(t, 3*time.Second, cfg.Auth.VerifyTimeout)
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
