package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/zugferd/internal/logger"
)

func TestSetup_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := logger.DefaultConfig()
	cfg.Level = "debug"
	cfg.Format = "json"
	cfg.Output = path

	require.NoError(t, logger.Setup(cfg))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log := logger.WithComponent("codec")
	log.Info().Str("version", "2.3").Msg("saved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"codec"`)
	assert.Contains(t, string(data), `"message":"saved"`)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetup_InvalidLevel(t *testing.T) {
	cfg := logger.DefaultConfig()
	cfg.Level = "loud"
	require.Error(t, logger.Setup(cfg))
}
