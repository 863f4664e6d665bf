package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/zugferd/internal/config"
	"github.com/rezonia/zugferd/internal/profile"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	assert.False(t, cfg.CollectViolations())

	v, f, p, err := cfg.Target()
	require.NoError(t, err)
	assert.Equal(t, profile.Version23, v)
	assert.Equal(t, profile.FamilyCII, f)
	assert.Equal(t, profile.Comfort, p)

	lc := cfg.GetLoggerConfig()
	assert.Equal(t, "console", lc.Format)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DEFAULT_PROFILE", "xrechnung")
	t.Setenv("DEFAULT_DIALECT", "ubl")
	t.Setenv("VALIDATION_MODE", "collect")
	t.Setenv("HTTP_WRITE_TIMEOUT", "5s")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	_, f, p, err := cfg.Target()
	require.NoError(t, err)
	assert.Equal(t, profile.FamilyUBL, f)
	assert.Equal(t, profile.XRechnung, p)
	assert.True(t, cfg.CollectViolations())
	assert.Equal(t, 5*time.Second, cfg.HTTPWriteTimeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "LOG_LEVEL: debug\nDEFAULT_VERSION: \"1.0\"\nDEFAULT_PROFILE: extended\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zugferd.yaml"), []byte(content), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	v, _, p, err := cfg.Target()
	require.NoError(t, err)
	assert.Equal(t, profile.Version1, v)
	assert.Equal(t, profile.Extended, p)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"DEFAULT_PROFILE": "gold",
		"DEFAULT_VERSION": "9",
		"VALIDATION_MODE": "lenient",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := config.Load(t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}
