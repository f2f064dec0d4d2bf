package recorder

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/go-gost/core/metrics"
	xmetrics "github.com/go-gost/seermon/metrics"
)

type fileRecorderOptions struct {
	recorder string
	sep      string
	sync     bool
}

type FileRecorderOption func(opts *fileRecorderOptions)

func RecorderFileRecorderOption(recorder string) FileRecorderOption {
	return func(opts *fileRecorderOptions) {
		opts.recorder = recorder
	}
}

// SepFileRecorderOption sets the separator written after each record.
func SepFileRecorderOption(sep string) FileRecorderOption {
	return func(opts *fileRecorderOptions) {
		opts.sep = sep
	}
}

// SyncFileRecorderOption flushes the output after every record when the
// output supports it (os.File does).
func SyncFileRecorderOption(sync bool) FileRecorderOption {
	return func(opts *fileRecorderOptions) {
		opts.sync = sync
	}
}

type syncer interface {
	Sync() error
}

type fileRecorder struct {
	recorder string
	out      io.WriteCloser
	sep      []byte
	sync     bool
	buf      bytes.Buffer
	mu       sync.Mutex
}

// FileRecorder appends records to out, one separator-terminated record per
// write, so a rotating output never splits a record across files.
func FileRecorder(out io.WriteCloser, opts ...FileRecorderOption) Recorder {
	var options fileRecorderOptions
	for _, opt := range opts {
		opt(&options)
	}

	return &fileRecorder{
		recorder: options.recorder,
		out:      out,
		sep:      []byte(options.sep),
		sync:     options.sync,
	}
}

func (r *fileRecorder) Record(ctx context.Context, b []byte) error {
	if len(b) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf.Reset()
	r.buf.Write(b)
	if len(r.sep) > 0 && !bytes.HasSuffix(b, r.sep) {
		r.buf.Write(r.sep)
	}
	if _, err := r.out.Write(r.buf.Bytes()); err != nil {
		return err
	}
	if s, ok := r.out.(syncer); ok && r.sync {
		if err := s.Sync(); err != nil {
			return err
		}
	}

	xmetrics.GetCounter(xmetrics.MetricRecorderRecordsCounter, metrics.Labels{"recorder": r.recorder}).Inc()
	return nil
}

func (r *fileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.out.Close()
}
