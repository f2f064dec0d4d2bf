package service

import (
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/api"
)

type options struct {
	accessLog  bool
	pathPrefix string
	logger     logger.Logger
}

type Option func(*options)

func PathPrefixOption(pathPrefix string) Option {
	return func(o *options) {
		o.pathPrefix = pathPrefix
	}
}

func AccessLogOption(enable bool) Option {
	return func(o *options) {
		o.accessLog = enable
	}
}

func LoggerOption(logger logger.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Service serves the pass API.
type Service struct {
	s      *http.Server
	ln     net.Listener
	cclose chan struct{}
	once   sync.Once
}

func NewService(network, addr string, pass api.Pass, opts ...Option) (*Service, error) {
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

	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	api.Register(r, &api.Options{
		AccessLog:  options.accessLog,
		PathPrefix: options.pathPrefix,
		Pass:       pass,
		Logger:     options.logger,
	})

	return &Service{
		s: &http.Server{
			Handler: r,
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
	s.once.Do(func() {
		close(s.cclose)
	})
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
