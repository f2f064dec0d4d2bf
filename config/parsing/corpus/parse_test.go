package corpus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gost/seermon/config"
	"github.com/go-gost/seermon/config/parsing"
	"github.com/go-gost/seermon/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corpusYAML = `
- payload: "41"
  malicious: true
- payload: "42"
  malicious: false
`

func TestParseFixture(t *testing.T) {
	c, err := ParseCorpus(context.Background(), &config.CorpusConfig{
		File:    "ignored.yaml",
		Fixture: &config.FixtureConfig{Count: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(corpusYAML), 0644))

	c, err := ParseCorpus(context.Background(), &config.CorpusConfig{File: path})
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.True(t, c.Lookup([]byte("A")).Malicious())
	assert.False(t, c.Lookup([]byte("B")).Malicious())
}

func TestParseHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"payload":"41","malicious":true}]`)
	}))
	defer srv.Close()

	c, err := ParseCorpus(context.Background(), &config.CorpusConfig{
		HTTP: &config.HTTPLoader{URL: srv.URL},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestParseDuplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- payload: \"41\"\n- payload: \"41\"\n"), 0644))

	_, err := ParseCorpus(context.Background(), &config.CorpusConfig{File: path})
	assert.Error(t, err)
}

func TestParseNoSource(t *testing.T) {
	_, err := ParseCorpus(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSource)
	_, err = ParseCorpus(context.Background(), &config.CorpusConfig{})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestParseMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(corpusYAML), 0644))

	_, err := ParseCorpus(context.Background(), &config.CorpusConfig{File: path, MaxSize: "16B"})
	assert.ErrorIs(t, err, loader.ErrTooLarge)

	c, err := ParseCorpus(context.Background(), &config.CorpusConfig{File: path, MaxSize: "1KiB"})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = ParseCorpus(context.Background(), &config.CorpusConfig{File: path, MaxSize: "big"})
	assert.ErrorIs(t, err, parsing.ErrInvalidSize)
}
