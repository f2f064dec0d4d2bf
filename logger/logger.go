package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gost/core/logger"
	"github.com/sirupsen/logrus"
)

func init() {
	logger.SetDefault(NewLogger())
}

type Options struct {
	Name   string
	Output io.Writer
	Format logger.LogFormat
	Level  logger.LogLevel
}

type Option func(opts *Options)

func NameOption(name string) Option {
	return func(opts *Options) {
		opts.Name = name
	}
}

// OutputOption sets the destination. An output that is also an io.Closer,
// other than the standard streams, is closed by the logger's Close.
func OutputOption(out io.Writer) Option {
	return func(opts *Options) {
		opts.Output = out
	}
}

func FormatOption(format logger.LogFormat) Option {
	return func(opts *Options) {
		opts.Format = format
	}
}

func LevelOption(level logger.LogLevel) Option {
	return func(opts *Options) {
		opts.Level = level
	}
}

type logrusLogger struct {
	entry  *logrus.Entry
	closer io.Closer
}

// NewLogger creates a logrus backed logger. Entries are JSON unless the
// text format is requested, and the level defaults to info.
func NewLogger(opts ...Option) logger.Logger {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	log := logrus.New()
	l := &logrusLogger{}
	if out := options.Output; out != nil {
		log.SetOutput(out)
		if c, ok := out.(io.Closer); ok && out != os.Stdout && out != os.Stderr {
			l.closer = c
		}
	}

	if options.Format == logger.TextFormat {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			DisableHTMLEscape: true,
			TimestampFormat:   "2006-01-02T15:04:05.000Z07:00",
		})
	}

	lvl, err := logrus.ParseLevel(string(options.Level))
	if err != nil || lvl < logrus.FatalLevel {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	l.entry = logrus.NewEntry(log)
	if options.Name != "" {
		l.entry = l.entry.WithField("logger", options.Name)
	}
	return l
}

func (l *logrusLogger) WithFields(fields map[string]any) logger.Logger {
	return &logrusLogger{
		entry:  l.entry.WithFields(logrus.Fields(fields)),
		closer: l.closer,
	}
}

func (l *logrusLogger) Trace(args ...any)                 { l.with().Trace(args...) }
func (l *logrusLogger) Tracef(format string, args ...any) { l.with().Tracef(format, args...) }
func (l *logrusLogger) Debug(args ...any)                 { l.with().Debug(args...) }
func (l *logrusLogger) Debugf(format string, args ...any) { l.with().Debugf(format, args...) }
func (l *logrusLogger) Info(args ...any)                  { l.with().Info(args...) }
func (l *logrusLogger) Infof(format string, args ...any)  { l.with().Infof(format, args...) }
func (l *logrusLogger) Warn(args ...any)                  { l.with().Warn(args...) }
func (l *logrusLogger) Warnf(format string, args ...any)  { l.with().Warnf(format, args...) }
func (l *logrusLogger) Error(args ...any)                 { l.with().Error(args...) }
func (l *logrusLogger) Errorf(format string, args ...any) { l.with().Errorf(format, args...) }

// Fatal logs at fatal level and exits the process with status 1.
func (l *logrusLogger) Fatal(args ...any) { l.with().Fatal(args...) }

// Fatalf logs at fatal level and exits the process with status 1.
func (l *logrusLogger) Fatalf(format string, args ...any) { l.with().Fatalf(format, args...) }

func (l *logrusLogger) GetLevel() logger.LogLevel {
	switch lvl := l.entry.Logger.GetLevel(); lvl {
	case logrus.WarnLevel:
		return logger.WarnLevel
	case logrus.PanicLevel:
		return logger.FatalLevel
	default:
		return logger.LogLevel(lvl.String())
	}
}

func (l *logrusLogger) IsLevelEnabled(level logger.LogLevel) bool {
	lvl, err := logrus.ParseLevel(string(level))
	if err != nil {
		return false
	}
	return l.entry.Logger.IsLevelEnabled(lvl)
}

// Close releases the output file, if the logger owns one.
func (l *logrusLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// with adds the caller of the logging method when debug is enabled.
func (l *logrusLogger) with() *logrus.Entry {
	if !l.entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return l.entry
	}

	// 0: with, 1: the logging method, 2: its caller
	_, file, line, ok := runtime.Caller(2)
	caller := "<???>"
	if ok {
		caller = fmt.Sprintf("%s:%d", filepath.Join(filepath.Base(filepath.Dir(file)), filepath.Base(file)), line)
	}
	return l.entry.WithField("caller", caller)
}
