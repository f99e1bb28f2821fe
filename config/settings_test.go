package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "none", s.Cache.Backend)
	assert.Equal(t, ".clientry-cache", s.Cache.Dir)
	assert.Equal(t, 24*time.Hour, s.TTL())
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoadSettingsFile(t *testing.T) {
	path := writeSource(t, "settings.yaml", `cache:
  backend: file
  dir: /tmp/clientry
  ttl_seconds: 60
log_level: debug
`)
	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "file", s.Cache.Backend)
	assert.Equal(t, "/tmp/clientry", s.Cache.Dir)
	assert.Equal(t, time.Minute, s.TTL())
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	t.Setenv("CLIENTRY_CACHE__BACKEND", "memory")
	t.Setenv("CLIENTRY_LOG_LEVEL", "warn")
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "memory", s.Cache.Backend)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestLoadSettingsInvalidBackend(t *testing.T) {
	path := writeSource(t, "settings.yaml", "cache:\n  backend: redis\n")
	_, err := LoadSettings(path)
	require.Error(t, err)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings("/does/not/exist.yaml")
	require.Error(t, err)
}
