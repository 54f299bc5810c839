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

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Backend.Timeout)
	assert.Equal(t, int64(32<<20), cfg.Upload.MaxBytes())
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://checker.example.com/api/")
	t.Setenv("BACKEND_TIMEOUT", "45s")
	t.Setenv("UPLOAD_MAX_SIZE_MB", "8")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_PASSWORD", "p@ss word")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://checker.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, int64(8<<20), cfg.Upload.MaxBytes())
	assert.True(t, cfg.Database.Enabled)
	assert.Contains(t, cfg.Database.DSN(), "p%40ss+word")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"relative base url", "BACKEND_BASE_URL", "/api"},
		{"zero timeout", "BACKEND_TIMEOUT", "0s"},
		{"negative upload size", "UPLOAD_MAX_SIZE_MB", "-1"},
		{"zero session ttl", "SESSION_TTL", "0s"},
		{"zero cleanup interval", "SESSION_CLEANUP_INTERVAL", "0s"},
		{"malformed duration", "BACKEND_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
