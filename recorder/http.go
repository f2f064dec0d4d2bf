package recorder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-gost/core/metrics"
	xmetrics "github.com/go-gost/seermon/metrics"
)

const (
	// maxErrorBody bounds the part of a rejecting response quoted in errors.
	maxErrorBody = 256
)

type httpRecorderOptions struct {
	recorder string
	timeout  time.Duration
	header   http.Header
}

type HTTPRecorderOption func(opts *httpRecorderOptions)

func RecorderHTTPRecorderOption(recorder string) HTTPRecorderOption {
	return func(opts *httpRecorderOptions) {
		opts.recorder = recorder
	}
}

func TimeoutHTTPRecorderOption(timeout time.Duration) HTTPRecorderOption {
	return func(opts *httpRecorderOptions) {
		opts.timeout = timeout
	}
}

// HeaderHTTPRecorderOption adds header to every request, e.g. credentials
// of the collector.
func HeaderHTTPRecorderOption(header http.Header) HTTPRecorderOption {
	return func(opts *httpRecorderOptions) {
		opts.header = header
	}
}

type httpRecorder struct {
	url        string
	recorder   string
	header     http.Header
	httpClient *http.Client
}

// HTTPRecorder posts each record as a JSON body to url. Any 2xx status is
// success.
func HTTPRecorder(url string, opts ...HTTPRecorderOption) Recorder {
	var options httpRecorderOptions
	for _, opt := range opts {
		opt(&options)
	}

	header := options.header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}

	return &httpRecorder{
		url:      url,
		recorder: options.recorder,
		header:   header,
		httpClient: &http.Client{
			Timeout: options.timeout,
		},
	}
}

func (r *httpRecorder) Record(ctx context.Context, b []byte) error {
	if len(b) == 0 {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header = r.header.Clone()

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("recorder %s: %s: %s", r.url, resp.Status, bytes.TrimSpace(msg))
	}
	io.Copy(io.Discard, resp.Body)

	xmetrics.GetCounter(xmetrics.MetricRecorderRecordsCounter, metrics.Labels{"recorder": r.recorder}).Inc()
	return nil
}
