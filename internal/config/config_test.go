package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvAndDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXPORT_RETENTION", "48h")
	t.Setenv("PLANNING_MONTHLY_DEFAULT_CLOSURES", "true")

	cfg, err := Load(writeConfig(t, "app:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, 48*time.Hour, cfg.Export.Retention)
	assert.Equal(t, 12*time.Hour, cfg.JWT.AccessExpiration)
	assert.True(t, cfg.Planning.MonthlyDefaultClosures)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "postgres://postgres:@db.internal:5432/planning?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_DefaultHoursFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load(writeConfig(t, "planning:\n  default_hours:\n    sunday: \"10:00-13:00\"\n    saturday: closed\n"))
	require.NoError(t, err)

	defaults, err := cfg.DefaultStoreHours()
	require.NoError(t, err)
	assert.Equal(t, "10:00-13:00", defaults[time.Sunday].String())
	assert.True(t, defaults[time.Saturday].Closed)
	assert.Equal(t, "09:00-20:00", defaults[time.Monday].String())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "")
		_, err := Load(writeConfig(t, "app:\n  env: test\n"))
		assert.Error(t, err)
	})

	t.Run("bad default hours", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "secret")
		_, err := Load(writeConfig(t, "planning:\n  default_hours:\n    monday: always\n"))
		assert.Error(t, err)
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "secret")
		t.Setenv("STORAGE_DRIVER", "s3")
		_, err := Load(writeConfig(t, "app:\n  env: test\n"))
		assert.Error(t, err)
	})
}

func TestDatabaseURL_PrefersExplicitURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{URL: "postgres://u:p@h/db", Host: "ignored"}}
	assert.Equal(t, "postgres://u:p@h/db", cfg.DatabaseURL())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
