package parsing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/units"
	"github.com/go-gost/seermon/config"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	ErrInvalidSize = errors.New("invalid size")
)

// ParseSize parses a byte size given either as a plain number of bytes or
// with a base-2 unit such as 64KiB or 4MB. The empty string is zero.
func ParseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidSize, s)
		}
		return n, nil
	}

	v, err := units.ParseBase2Bytes(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidSize, s)
	}
	return int(v), nil
}

// ExpandPath replaces a leading ~ in path with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return homedir.Expand(path)
}

// OpenOutput opens the file at path for appending, creating missing parent
// directories. With rotation set the file is rotated by lumberjack instead.
func OpenOutput(path string, rotation *config.LogRotationConfig) (io.WriteCloser, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	if rotation != nil {
		return &lumberjack.Logger{
			Filename:   path,
			MaxSize:    rotation.MaxSize,
			MaxAge:     rotation.MaxAge,
			MaxBackups: rotation.MaxBackups,
			LocalTime:  rotation.LocalTime,
			Compress:   rotation.Compress,
		}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
