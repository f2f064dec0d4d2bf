package loader

import (
	"context"
	"errors"
	"io"
)

const (
	// DefaultMaxSize bounds a loaded corpus document.
	DefaultMaxSize = 64 << 20
)

var (
	ErrTooLarge    = errors.New("loader: document too large")
	ErrNotDocument = errors.New("loader: not a corpus document")
)

// Loader fetches a raw document from some source.
type Loader interface {
	Load(context.Context) (io.Reader, error)
	Close() error
}

// Lister is implemented by loaders whose source is a sequence of items.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}
