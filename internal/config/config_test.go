package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "[]", cfg.AuthorizationRules)
	assert.False(t, cfg.ReadOnlyEnabled)
	assert.Equal(t, 1024, cfg.AuditQueueSize)
	assert.Equal(t, 1, cfg.AuditWorkers)
	assert.Equal(t, "secretstore", cfg.MetricsNamespace)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("READ_ONLY_ENABLED", "true")
	t.Setenv("DEFAULT_ENCRYPTION_KEY_ID", "key-2025")
	t.Setenv("AUDIT_WORKERS", "4")

	cfg := Load()

	assert.True(t, cfg.ReadOnlyEnabled)
	assert.Equal(t, "key-2025", cfg.DefaultEncryptionKeyID)
	assert.Equal(t, 4, cfg.AuditWorkers)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.logLevel}
		assert.Equal(t, tt.want, cfg.GetGinMode())
	}
}
