package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

const (
	acceptCorpus = "application/yaml, application/json;q=0.9, text/plain;q=0.5"
)

type httpLoaderOptions struct {
	timeout time.Duration
	maxSize int64
}

type HTTPLoaderOption func(opts *httpLoaderOptions)

func TimeoutHTTPLoaderOption(timeout time.Duration) HTTPLoaderOption {
	return func(opts *httpLoaderOptions) {
		opts.timeout = timeout
	}
}

func MaxSizeHTTPLoaderOption(n int64) HTTPLoaderOption {
	return func(opts *httpLoaderOptions) {
		opts.maxSize = n
	}
}

type httpLoader struct {
	url        string
	maxSize    int64
	httpClient *http.Client
}

// HTTPLoader fetches a corpus document with GET. The response must be 200
// with a YAML, JSON or plain text body no larger than the size limit.
func HTTPLoader(url string, opts ...HTTPLoaderOption) Loader {
	var options httpLoaderOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.maxSize <= 0 {
		options.maxSize = DefaultMaxSize
	}

	return &httpLoader{
		url:     url,
		maxSize: options.maxSize,
		httpClient: &http.Client{
			Timeout: options.timeout,
		},
	}
}

func (l *httpLoader) Load(ctx context.Context) (io.Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptCorpus)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", l.url, resp.Status)
	}
	if err := checkContentType(resp.Header.Get("Content-Type")); err != nil {
		return nil, fmt.Errorf("%s: %w", l.url, err)
	}
	if resp.ContentLength > l.maxSize {
		return nil, fmt.Errorf("%s: %d bytes: %w", l.url, resp.ContentLength, ErrTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%s: over %d bytes: %w", l.url, l.maxSize, ErrTooLarge)
	}

	return bytes.NewReader(data), nil
}

func (l *httpLoader) Close() error {
	l.httpClient.CloseIdleConnections()
	return nil
}

// checkContentType accepts YAML, JSON, plain text and untyped bodies.
func checkContentType(s string) error {
	if s == "" {
		return nil
	}
	mt, _, err := mime.ParseMediaType(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrNotDocument, s)
	}
	switch {
	case mt == "text/plain", mt == "application/octet-stream",
		strings.HasSuffix(mt, "/json"), strings.HasSuffix(mt, "+json"),
		strings.HasSuffix(mt, "/yaml"), strings.HasSuffix(mt, "/x-yaml"), strings.HasSuffix(mt, "+yaml"):
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrNotDocument, mt)
	}
}
