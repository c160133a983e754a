package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LIGHTBNB_JWT_SECRET", "0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.Migrate)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LIGHTBNB_JWT_SECRET", "0123456789abcdef")
	t.Setenv("LIGHTBNB_ENV", "production")
	t.Setenv("LIGHTBNB_HTTP_PORT", "9000")
	t.Setenv("LIGHTBNB_TOKEN_TTL", "2h")
	t.Setenv("LIGHTBNB_MIGRATE", "false")
	t.Setenv("LIGHTBNB_LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.Migrate)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"short secret", map[string]string{"LIGHTBNB_JWT_SECRET": "short"}},
		{"bad env", map[string]string{"LIGHTBNB_JWT_SECRET": "0123456789abcdef", "LIGHTBNB_ENV": "staging"}},
		{"bad port", map[string]string{"LIGHTBNB_JWT_SECRET": "0123456789abcdef", "LIGHTBNB_HTTP_PORT": "http"}},
		{"bad log level", map[string]string{"LIGHTBNB_JWT_SECRET": "0123456789abcdef", "LIGHTBNB_LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LIGHTBNB_JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
