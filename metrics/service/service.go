package service

import (
	"net"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DefaultPath = "/metrics"
)

type options struct {
	path string
}

type Option func(*options)

func PathOption(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// Service exposes the prometheus collectors over HTTP.
type Service struct {
	s      *http.Server
	ln     net.Listener
	cclose chan struct{}
	once   sync.Once
}

func NewService(network, addr string, opts ...Option) (*Service, error) {
	if network == "" {
		network = "tcp"
	}
	ln, err := net.Listen(network, addr)
	if err != nil {
		return nil, err
	}

	var options options
	for _, opt := range opts {
		opt(&options)
	}
	if options.path == "" {
		options.path = DefaultPath
	}

	mux := http.NewServeMux()
	mux.Handle(options.path, promhttp.Handler())
	return &Service{
		s: &http.Server{
			Handler: mux,
		},
		ln:     ln,
		cclose: make(chan struct{}),
	}, nil
}

func (s *Service) Serve() error {
	return s.s.Serve(s.ln)
}

func (s *Service) Addr() net.Addr {
	return s.ln.Addr()
}

func (s *Service) Close() error {
	s.once.Do(func() { close(s.cclose) })
	return s.s.Close()
}

func (s *Service) IsClosed() bool {
	select {
	case <-s.cclose:
		return true
	default:
		return false
	}
}
