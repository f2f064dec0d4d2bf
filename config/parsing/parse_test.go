package parsing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gost/seermon/config"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"65536", 65536},
		{" 1024 ", 1024},
		{"64KiB", 64 * 1024},
		{"4MiB", 4 << 20},
		{"2KB", 2048},
		{"512B", 512},
	}
	for _, c := range cases {
		n, err := ParseSize(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, n, c.in)
	}

	for _, in := range []string{"-1", "lots", "12parsecs"} {
		_, err := ParseSize(in)
		assert.ErrorIs(t, err, ErrInvalidSize, in)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	p, err := ExpandPath("~/seermon/corpus.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "seermon", "corpus.yaml"), p)

	p, err = ExpandPath("/etc/seermon/corpus.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/seermon/corpus.yaml", p)

	p, err = ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestOpenOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.log")

	w, err := OpenOutput(path, nil)
	require.NoError(t, err)
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = OpenOutput(path, nil)
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(b))
}

func TestOpenOutputRotation(t *testing.T) {
	w, err := OpenOutput(filepath.Join(t.TempDir(), "out.log"), &config.LogRotationConfig{MaxSize: 1})
	require.NoError(t, err)
	defer w.Close()

	lj, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, 1, lj.MaxSize)
}
