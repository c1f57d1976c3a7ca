package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, "/api/v1", cfg.Server.BasePath)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Disabled)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `server:
  host: "127.0.0.1"
  port: 8088
  base_path: "api/v2/"
  cors_origin: "https://example.com"
stations:
  file: "linkstations_locations.json"
log:
  level: DEBUG
metrics:
  disabled: true
`)
	cfg, err := Load(path, "")
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"host", cfg.Server.Host, "127.0.0.1"},
		{"port", cfg.Server.Port, 8088},
		{"base_path", cfg.Server.BasePath, "/api/v2"},
		{"cors_origin", cfg.Server.CORSOrigin, "https://example.com"},
		{"stations.file", cfg.Stations.File, "linkstations_locations.json"},
		{"log.level", cfg.Log.Level, "debug"},
		{"metrics.disabled", cfg.Metrics.Disabled, true},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"server":{"port":9000},"log":{"level":"warn"}}`)
	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "config.toml", `port = 1`)
	_, err := Load(path, "")
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "server:\n  port: 8088\n")
	t.Setenv("LINKSTATION_SERVER__PORT", "7000")
	t.Setenv("LINKSTATION_STATIONS__FILE", "/etc/stations.yaml")
	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/etc/stations.yaml", cfg.Stations.File)
}

func TestAppPortWins(t *testing.T) {
	t.Setenv("LINKSTATION_SERVER__PORT", "7000")
	t.Setenv("APP_PORT", "5050")
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Server.Port)

	t.Setenv("APP_PORT", "abc")
	_, err = Load("", "")
	assert.ErrorContains(t, err, "APP_PORT")
}

func TestDotEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "LINKSTATION_LOG__LEVEL=error\n")
	t.Setenv("LINKSTATION_LOG__LEVEL", "")
	require.NoError(t, os.Unsetenv("LINKSTATION_LOG__LEVEL"))
	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	require.NoError(t, os.Unsetenv("LINKSTATION_LOG__LEVEL"))

	_, err = Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Level = "chatty"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.ShutdownTimeoutSeconds = -1
	assert.Error(t, cfg.Validate())
}
