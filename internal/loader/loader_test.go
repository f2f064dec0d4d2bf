package loader

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader(t *testing.T) {
	name := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(name, []byte("- payload: aa\n"), 0644))

	l := FileLoader(name)
	defer l.Close()

	r, err := l.Load(context.Background())
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "- payload: aa\n", string(b))
}

func TestFileLoaderMissing(t *testing.T) {
	_, err := FileLoader(filepath.Join(t.TempDir(), "nope")).Load(context.Background())
	assert.Error(t, err)
}

func TestHTTPLoader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/corpus" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	l := HTTPLoader(srv.URL + "/corpus")
	defer l.Close()
	r, err := l.Load(context.Background())
	require.NoError(t, err)
	b, _ := io.ReadAll(r)
	assert.Equal(t, "[]", string(b))

	_, err = HTTPLoader(srv.URL + "/missing").Load(context.Background())
	assert.Error(t, err)
}

func TestFileLoaderLimits(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "corpus.yaml")
	require.NoError(t, os.WriteFile(name, []byte("- payload: aabbccdd\n"), 0644))

	_, err := FileLoader(name, MaxSizeFileLoaderOption(8)).Load(context.Background())
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = FileLoader(dir).Load(context.Background())
	assert.ErrorIs(t, err, ErrNotDocument)
}

func TestHTTPLoaderContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/yaml":
			assert.Contains(t, r.Header.Get("Accept"), "application/yaml")
			w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
			w.Write([]byte("- payload: aa\n"))
		case "/html":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html></html>"))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"payload":"aabbccdd"}]`))
		}
	}))
	defer srv.Close()

	r, err := HTTPLoader(srv.URL + "/yaml").Load(context.Background())
	require.NoError(t, err)
	b, _ := io.ReadAll(r)
	assert.Equal(t, "- payload: aa\n", string(b))

	_, err = HTTPLoader(srv.URL + "/html").Load(context.Background())
	assert.ErrorIs(t, err, ErrNotDocument)

	_, err = HTTPLoader(srv.URL+"/json", MaxSizeHTTPLoaderOption(8)).Load(context.Background())
	assert.ErrorIs(t, err, ErrTooLarge)
}
