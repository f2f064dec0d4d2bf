package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/config"
	"github.com/go-gost/seermon/config/parsing"
	xlogger "github.com/go-gost/seermon/logger"
)

var (
	ErrUnknownLevel  = errors.New("logger: unknown level")
	ErrUnknownFormat = errors.New("logger: unknown format")
)

// ParseLevel accepts the logger levels plus "warning". The empty string
// is info.
func ParseLevel(s string) (logger.LogLevel, error) {
	switch lvl := logger.LogLevel(strings.ToLower(strings.TrimSpace(s))); lvl {
	case "":
		return logger.InfoLevel, nil
	case "warning":
		return logger.WarnLevel, nil
	case logger.TraceLevel, logger.DebugLevel, logger.InfoLevel,
		logger.WarnLevel, logger.ErrorLevel, logger.FatalLevel:
		return lvl, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

func parseFormat(s string) (logger.LogFormat, error) {
	switch f := logger.LogFormat(strings.ToLower(s)); f {
	case "", logger.JSONFormat:
		return logger.JSONFormat, nil
	case logger.TextFormat:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ParseLogger builds the logger described by cfg, nil when cfg has no log
// section. Output is stdout, stderr (the default), none, or a file path
// that may start with ~ and is rotated when a rotation section is set.
func ParseLogger(cfg *config.LoggerConfig) (logger.Logger, error) {
	if cfg == nil || cfg.Log == nil {
		return nil, nil
	}

	level, err := ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := parseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	var out io.Writer
	switch cfg.Log.Output {
	case "none", "null":
		return xlogger.Nop(), nil
	case "stdout":
		out = os.Stdout
	case "stderr", "":
		out = os.Stderr
	default:
		w, err := parsing.OpenOutput(cfg.Log.Output, cfg.Log.Rotation)
		if err != nil {
			return nil, fmt.Errorf("logger %s: %w", cfg.Name, err)
		}
		out = w
	}

	return xlogger.NewLogger(
		xlogger.NameOption(cfg.Name),
		xlogger.OutputOption(out),
		xlogger.FormatOption(format),
		xlogger.LevelOption(level),
	), nil
}
