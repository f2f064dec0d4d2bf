package logger

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"":        logger.InfoLevel,
		"DEBUG":   logger.DebugLevel,
		"warning": logger.WarnLevel,
		" warn ":  logger.WarnLevel,
		"trace":   logger.TraceLevel,
	}
	for in, want := range cases {
		lvl, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, lvl, in)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestParseLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pass.log")
	log, err := ParseLogger(&config.LoggerConfig{
		Name: "pass",
		Log: &config.LogConfig{
			Output: path,
			Level:  "debug",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.True(t, log.IsLevelEnabled(logger.DebugLevel))

	log.WithFields(map[string]any{"kind": "monitor"}).Info("STARTING")
	require.NoError(t, log.(io.Closer).Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(b, &entry))
	assert.Equal(t, "pass", entry["logger"])
	assert.Equal(t, "monitor", entry["kind"])
	assert.Equal(t, "STARTING", entry["msg"])
}

func TestParseLoggerNone(t *testing.T) {
	log, err := ParseLogger(&config.LoggerConfig{Log: &config.LogConfig{Output: "none"}})
	require.NoError(t, err)
	assert.False(t, log.IsLevelEnabled(logger.ErrorLevel))

	log, err = ParseLogger(&config.LoggerConfig{Name: "empty"})
	require.NoError(t, err)
	assert.Nil(t, log)
}

func TestParseLoggerInvalid(t *testing.T) {
	_, err := ParseLogger(&config.LoggerConfig{Log: &config.LogConfig{Level: "loud"}})
	assert.ErrorIs(t, err, ErrUnknownLevel)

	_, err = ParseLogger(&config.LoggerConfig{Log: &config.LogConfig{Format: "xml"}})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	dir := t.TempDir()
	_, err = ParseLogger(&config.LoggerConfig{Log: &config.LogConfig{Output: dir}})
	assert.Error(t, err)
}
