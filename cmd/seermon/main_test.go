package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gost/seermon/config"
	"github.com/go-gost/seermon/corpus"
	"github.com/go-gost/seermon/report"
	"github.com/go-gost/seermon/seer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommand(t *testing.T) {
	b, err := (&seer.Verdict{Malicious: true, Payload: []byte{0xca, 0xfe}}).MarshalBinary()
	require.NoError(t, err)

	var out bytes.Buffer
	decodeCmd.SetOut(&out)
	require.NoError(t, runDecode(decodeCmd, []string{hex.EncodeToString(b)}))
	assert.Equal(t, "prediction: MALICIOUS\npayload: cafe\n", out.String())

	assert.Error(t, runDecode(decodeCmd, []string{"zz"}))
	assert.Error(t, runDecode(decodeCmd, []string{"00"}))
}

func TestFixtureCommand(t *testing.T) {
	fixtureFlags.opts = corpus.FixtureOptions{Count: 3}
	fixtureFlags.format = "yaml"
	fixtureFlags.output = ""

	var out bytes.Buffer
	fixtureCmd.SetOut(&out)
	require.NoError(t, runFixture(fixtureCmd, nil))

	entries, err := corpus.Decode(&out)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Malicious)
	assert.False(t, entries[1].Malicious)
}

func TestApplyRunFlags(t *testing.T) {
	require.NoError(t, runCmd.Flags().Parse([]string{"--target", "10.0.0.1:7000", "--fixture", "5", "--listen-first"}))

	cfg := &config.Config{}
	applyRunFlags(runCmd, cfg)
	assert.Equal(t, "10.0.0.1:7000", cfg.Transport.Target)
	assert.Equal(t, "seer", cfg.Filter)
	require.NotNil(t, cfg.Corpus.Fixture)
	assert.Equal(t, 5, cfg.Corpus.Fixture.Count)
	assert.True(t, cfg.Pass.ListenFirst)
	assert.Nil(t, cfg.Metrics)
}

func TestWriteReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := &report.Report{PassID: "pass-1"}
	require.NoError(t, writeReport(r, &config.ReportConfig{Format: "json", Output: path}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"pass": "pass-1"`)

	assert.Error(t, writeReport(r, &config.ReportConfig{Format: "xml", Output: path}))
}
