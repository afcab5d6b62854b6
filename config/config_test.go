package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	// t.Setenv registers the restore; unsetting afterwards makes the
	// variable truly absent so envconfig falls back to the defaults.
	for _, key := range []string{"PORT", "DB_PATH", "JWT_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "./data/analytics.db", cfg.DBPath)
	assert.Equal(t, 168*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("JWT_TTL", "24h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"port too low", Config{Port: 0, DBPath: "x", JWTSecret: "s", JWTTTL: time.Hour}, "invalid port"},
		{"port too high", Config{Port: 70000, DBPath: "x", JWTSecret: "s", JWTTTL: time.Hour}, "invalid port"},
		{"empty db path", Config{Port: 3001, JWTSecret: "s", JWTTTL: time.Hour}, "DB_PATH"},
		{"zero ttl", Config{Port: 3001, DBPath: "x", JWTSecret: "s"}, "JWT_TTL"},
		{"valid", Config{Port: 3001, DBPath: "x", JWTSecret: "s", JWTTTL: time.Hour}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
