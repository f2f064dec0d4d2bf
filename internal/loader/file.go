package loader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
)

type fileLoaderOptions struct {
	maxSize int64
}

type FileLoaderOption func(opts *fileLoaderOptions)

func MaxSizeFileLoaderOption(n int64) FileLoaderOption {
	return func(opts *fileLoaderOptions) {
		opts.maxSize = n
	}
}

type fileLoader struct {
	filename string
	maxSize  int64
}

// FileLoader loads a corpus document from a local file. The name may start
// with ~, and files over the size limit are rejected before being read.
func FileLoader(filename string, opts ...FileLoaderOption) Loader {
	var options fileLoaderOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.maxSize <= 0 {
		options.maxSize = DefaultMaxSize
	}

	return &fileLoader{
		filename: filename,
		maxSize:  options.maxSize,
	}
}

// Load returns the open file; the caller closes it.
func (l *fileLoader) Load(ctx context.Context) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := homedir.Expand(l.filename)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNotDocument)
	}
	if fi.Size() > l.maxSize {
		f.Close()
		return nil, fmt.Errorf("%s: %d bytes: %w", name, fi.Size(), ErrTooLarge)
	}
	return f, nil
}

func (l *fileLoader) Close() error {
	return nil
}
