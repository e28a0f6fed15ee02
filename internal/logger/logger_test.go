package logger

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/editorial/config"
)

func TestNew(t *testing.T) {
	log, err := New(config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	log, err := New(config.LogConfig{Level: "loud"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	_, err := New(config.LogConfig{Level: "info", Output: "file", Path: path})
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = New(config.LogConfig{Output: "file"})
	assert.Error(t, err)
}

func TestComponent(t *testing.T) {
	entry := Component(nil, "workflow")
	assert.Equal(t, "workflow", entry.Data["component"])
}
