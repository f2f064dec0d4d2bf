package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
log:
  level: debug
  format: text
transport:
  type: udp
  addr: 127.0.0.1:7000
  target: 10.0.0.1:7000
  readBufferSize: 64KiB
filter: seer src 10.0.0.0/8
corpus:
  maxSize: 65536
  fixture:
    count: 10
pass:
  verbosity: minimal
  listenFirst: true
  timeout: 30s
  pollInterval: 250ms
  rate: 50
  recorder: verdicts
recorders:
- name: verdicts
  file:
    path: /var/log/seermon/verdicts.log
    rotation:
      maxSize: 10
metrics:
  addr: :9000
api:
  addr: :18080
  pathPrefix: /api
report:
  format: json
`

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seermon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	var cfg Config
	require.NoError(t, cfg.ReadFile(path))

	require.NotNil(t, cfg.Transport)
	assert.Equal(t, "udp", cfg.Transport.Type)
	assert.Equal(t, "10.0.0.1:7000", cfg.Transport.Target)
	assert.Equal(t, "64KiB", cfg.Transport.ReadBufferSize)
	assert.Equal(t, "seer src 10.0.0.0/8", cfg.Filter)
	require.NotNil(t, cfg.Corpus.Fixture)
	assert.Equal(t, 10, cfg.Corpus.Fixture.Count)
	assert.Equal(t, "65536", cfg.Corpus.MaxSize)

	require.NotNil(t, cfg.Pass)
	assert.True(t, cfg.Pass.ListenFirst)
	assert.Equal(t, 30*time.Second, cfg.Pass.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Pass.PollInterval)
	assert.Equal(t, float64(50), cfg.Pass.Rate)

	require.Len(t, cfg.Recorders, 1)
	assert.Equal(t, 10, cfg.Recorders[0].File.Rotation.MaxSize)
	assert.Equal(t, "/api", cfg.API.PathPrefix)
	assert.Equal(t, "json", cfg.Report.Format)
}

func TestWrite(t *testing.T) {
	cfg := &Config{
		Transport: &TransportConfig{Type: "udp", Target: "10.0.0.1:7000"},
		Filter:    "seer",
	}

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf, "yaml"))
	assert.Contains(t, buf.String(), "target: 10.0.0.1:7000")

	buf.Reset()
	require.NoError(t, cfg.Write(&buf, "json"))
	assert.Contains(t, buf.String(), `"filter": "seer"`)
}

func TestGlobal(t *testing.T) {
	Set(&Config{Filter: "seer"})
	cfg := Global()
	cfg.Filter = "changed"
	assert.Equal(t, "seer", Global().Filter)
}
