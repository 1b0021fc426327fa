package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_SOURCE_DRIVER", DriverMemory)
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DriverMemory, cfg.Source.Driver)
	assert.Equal(t, 10*time.Second, cfg.Source.HTTPTimeout)
	assert.Equal(t, 10.0, cfg.Source.RequestsPerSecond)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Zero(t, cfg.ProbeInterval)
}

func TestLoadSupabaseRequiresCredentials(t *testing.T) {
	t.Setenv("DATA_SOURCE_DRIVER", DriverSupabase)
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_KEY", "")
	t.Setenv("CONFIG_FILE", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "anon", cfg.Source.SupabaseKey)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DATA_SOURCE_DRIVER", "oracle")
	t.Setenv("CONFIG_FILE", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATA_SOURCE_DRIVER", DriverMemory)
	t.Setenv("HTTP_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "HTTP_TIMEOUT")
}

func TestLoadConfigFileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "8088"
log:
  level: debug
source:
  driver: sqlite
  sqlite_path: /var/lib/inspections.db
probe_interval: 5m
`), 0o644))

	t.Setenv("DATA_SOURCE_DRIVER", DriverMemory)
	t.Setenv("PORT", "9000")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Source.Driver)
	assert.Equal(t, "/var/lib/inspections.db", cfg.Source.SQLitePath)
	assert.Equal(t, 5*time.Minute, cfg.ProbeInterval)
	assert.Equal(t, 10*time.Second, cfg.Source.HTTPTimeout, "keys absent from the file keep env values")
}
