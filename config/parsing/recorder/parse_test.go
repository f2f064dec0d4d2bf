package recorder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gost/seermon/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records", "verdicts.log")
	r, err := ParseRecorder(&config.RecorderConfig{
		Name: "verdicts",
		File: &config.FileRecorder{Path: path, Sync: true},
	})
	require.NoError(t, err)
	require.NotNil(t, r)

	require.NoError(t, r.Record(context.Background(), []byte(`{"a":1}`)))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", string(b))
}

func TestParseFileRecorderUnwritable(t *testing.T) {
	_, err := ParseRecorder(&config.RecorderConfig{
		Name: "verdicts",
		File: &config.FileRecorder{Path: t.TempDir()},
	})
	assert.Error(t, err)
}

func TestParseRecorderNone(t *testing.T) {
	r, err := ParseRecorder(nil)
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = ParseRecorder(&config.RecorderConfig{Name: "empty"})
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = ParseRecorder(&config.RecorderConfig{
		Name:  "redis",
		Redis: &config.RedisRecorder{Addr: "127.0.0.1:6379", Type: "list"},
	})
	require.NoError(t, err)
	assert.NotNil(t, r)
}
