package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Console(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "debug", Format: "console"},
		&config.AppConfig{Name: "portal", Environment: "development"},
	)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(-1)) // debug
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "verbose", Format: "json"},
		&config.AppConfig{Name: "portal", Environment: "production"},
	)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
	assert.True(t, log.Core().Enabled(0))
}

func TestNewLogger_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "portal.log")

	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "info", Format: "json", File: path},
		&config.AppConfig{Name: "portal", Environment: "staging"},
	)
	require.NoError(t, err)

	log.Info("hello from test")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"environment":"staging"`)
}
