package registry

import (
	"errors"
	"fmt"

	"github.com/go-gost/core/logger"
)

var (
	ErrNilLogger = errors.New("registry: nil logger")
)

type loggerRegistry struct {
	registry[logger.Logger]
}

// Register adds a named logger. A logger with an output file is closed
// when it is unregistered.
func (r *loggerRegistry) Register(name string, v logger.Logger) error {
	if v == nil {
		return fmt.Errorf("%w: %s", ErrNilLogger, name)
	}
	return r.registry.Register(name, v)
}
