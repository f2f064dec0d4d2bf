package registry

import (
	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/transport"
)

type NewTransport func(opts ...transport.Option) transport.Transport

type transportRegistry struct {
	registry[NewTransport]
}

func (r *transportRegistry) Register(name string, v NewTransport) error {
	if err := r.registry.Register(name, v); err != nil {
		logger.Default().Fatal(err)
	}
	return nil
}
