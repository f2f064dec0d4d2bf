package transport

import (
	"context"
	"errors"
	"net"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/stats"
)

var (
	ErrListening = errors.New("transport: already listening")
	ErrClosed    = errors.New("transport: closed")
	ErrNoTarget  = errors.New("transport: no target address")
	ErrNotInit   = errors.New("transport: not initialized")
)

// ArrivalFunc is invoked once per received unit that passed the filter.
// b is owned by the callee.
type ArrivalFunc func(b []byte, addr net.Addr)

// Transport moves probes to the classifier and verdicts back.
type Transport interface {
	// Init opens the underlying sockets.
	Init() error
	// Send transmits one unit carrying payload. Delivery is best effort.
	Send(ctx context.Context, payload []byte) error
	// Listen starts delivering matching units to fn in the background and
	// returns immediately. Delivery stops when ctx is done or the
	// transport is closed. Only setup failures are returned.
	Listen(ctx context.Context, filter *Filter, fn ArrivalFunc) error
	// Addr is the local address verdicts are received on.
	Addr() net.Addr
	Close() error
}

type Options struct {
	// Addr is the local address verdicts are received on.
	Addr string
	// Target is the address of the classifier probes are sent to.
	Target string
	// Netns is a network namespace name or path to open sockets in.
	Netns          string
	ReadBufferSize int
	// Stats, if set, receives byte and filter counters.
	Stats  *stats.Stats
	Logger logger.Logger
}

type Option func(opts *Options)

func AddrOption(addr string) Option {
	return func(opts *Options) {
		opts.Addr = addr
	}
}

func TargetOption(target string) Option {
	return func(opts *Options) {
		opts.Target = target
	}
}

func NetnsOption(netns string) Option {
	return func(opts *Options) {
		opts.Netns = netns
	}
}

func ReadBufferSizeOption(n int) Option {
	return func(opts *Options) {
		opts.ReadBufferSize = n
	}
}

func LoggerOption(logger logger.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func StatsOption(stats *stats.Stats) Option {
	return func(opts *Options) {
		opts.Stats = stats
	}
}
