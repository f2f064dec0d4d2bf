package monitor

import (
	"time"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/limiter/rate"
	"github.com/go-gost/seermon/recorder"
	"github.com/go-gost/seermon/stats"
	"github.com/go-gost/seermon/transport"
)

const (
	DefaultDiagnosticTTL = time.Minute
)

// Verbosity selects how chatty a pass is. Per-probe lines are logged at
// info level when verbose and at debug level otherwise.
type Verbosity int

const (
	VerbosityMinimal Verbosity = iota
	VerbosityVerbose
)

type Options struct {
	Transport transport.Transport
	Filter    *transport.Filter
	Logger    logger.Logger
	Verbosity Verbosity
	// Recorder receives one record per verdict.
	Recorder recorder.Recorder
	// ListenFirst starts the listener before dispatching probes.
	ListenFirst bool
	// RateLimiter paces dispatch. Nil sends back to back.
	RateLimiter rate.Limiter
	// DiagnosticTTL is how long a repeated diagnostic stays silent.
	DiagnosticTTL time.Duration
	// Stats collects the pass counters. It may be shared with the transport.
	Stats *stats.Stats
}

type Option func(opts *Options)

func TransportOption(tr transport.Transport) Option {
	return func(opts *Options) {
		opts.Transport = tr
	}
}

func FilterOption(filter *transport.Filter) Option {
	return func(opts *Options) {
		opts.Filter = filter
	}
}

func LoggerOption(logger logger.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func VerbosityOption(v Verbosity) Option {
	return func(opts *Options) {
		opts.Verbosity = v
	}
}

func RecorderOption(r recorder.Recorder) Option {
	return func(opts *Options) {
		opts.Recorder = r
	}
}

func ListenFirstOption(b bool) Option {
	return func(opts *Options) {
		opts.ListenFirst = b
	}
}

func RateLimiterOption(limiter rate.Limiter) Option {
	return func(opts *Options) {
		opts.RateLimiter = limiter
	}
}

func DiagnosticTTLOption(ttl time.Duration) Option {
	return func(opts *Options) {
		opts.DiagnosticTTL = ttl
	}
}

func StatsOption(st *stats.Stats) Option {
	return func(opts *Options) {
		opts.Stats = st
	}
}
