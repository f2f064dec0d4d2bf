package recorder

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/core/metrics"
	xmetrics "github.com/go-gost/seermon/metrics"
)

const (
	DefaultTCPRecorderTimeout = 5 * time.Second
)

type tcpRecorderOptions struct {
	recorder string
	timeout  time.Duration
	log      logger.Logger
}

type TCPRecorderOption func(opts *tcpRecorderOptions)

func RecorderTCPRecorderOption(recorder string) TCPRecorderOption {
	return func(opts *tcpRecorderOptions) {
		opts.recorder = recorder
	}
}

// TimeoutTCPRecorderOption bounds both dialing and each record write.
func TimeoutTCPRecorderOption(timeout time.Duration) TCPRecorderOption {
	return func(opts *tcpRecorderOptions) {
		opts.timeout = timeout
	}
}

func LogTCPRecorderOption(log logger.Logger) TCPRecorderOption {
	return func(opts *tcpRecorderOptions) {
		opts.log = log
	}
}

type tcpRecorder struct {
	addr     string
	recorder string
	timeout  time.Duration
	dialer   *net.Dialer
	log      logger.Logger

	mu   sync.Mutex
	conn net.Conn
}

// TCPRecorder streams newline-delimited records to addr over a single
// connection. A failed write drops the connection and the next record
// dials again.
func TCPRecorder(addr string, opts ...TCPRecorderOption) Recorder {
	var options tcpRecorderOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.timeout <= 0 {
		options.timeout = DefaultTCPRecorderTimeout
	}

	return &tcpRecorder{
		addr:     addr,
		recorder: options.recorder,
		timeout:  options.timeout,
		dialer: &net.Dialer{
			Timeout: options.timeout,
		},
		log: options.log,
	}
}

func (r *tcpRecorder) Record(ctx context.Context, b []byte) error {
	if len(b) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		conn, err := r.dialer.DialContext(ctx, "tcp", r.addr)
		if err != nil {
			r.warnf("dial %s: %v", r.addr, err)
			return err
		}
		r.conn = conn
	}

	deadline := time.Now().Add(r.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	r.conn.SetWriteDeadline(deadline)

	line := make([]byte, 0, len(b)+1)
	line = append(line, b...)
	if b[len(b)-1] != '\n' {
		line = append(line, '\n')
	}
	if _, err := r.conn.Write(line); err != nil {
		r.warnf("write %s: %v", r.addr, err)
		r.conn.Close()
		r.conn = nil
		return err
	}

	xmetrics.GetCounter(xmetrics.MetricRecorderRecordsCounter, metrics.Labels{"recorder": r.recorder}).Inc()
	return nil
}

func (r *tcpRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn = nil
	return err
}

func (r *tcpRecorder) warnf(format string, args ...any) {
	if r.log != nil {
		r.log.Warnf(format, args...)
	}
}
