package transport

import (
	"errors"
	"fmt"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/config"
	"github.com/go-gost/seermon/config/parsing"
	"github.com/go-gost/seermon/registry"
	"github.com/go-gost/seermon/stats"
	"github.com/go-gost/seermon/transport"

	// register transports
	_ "github.com/go-gost/seermon/transport/ftcp"
	_ "github.com/go-gost/seermon/transport/udp"
)

const (
	DefaultType = "udp"
)

var (
	ErrUnknownTransport = errors.New("transport: unknown type")
)

// ParseTransport creates and initializes the transport described by cfg.
func ParseTransport(cfg *config.TransportConfig, st *stats.Stats) (transport.Transport, error) {
	if cfg == nil {
		cfg = &config.TransportConfig{}
	}
	typ := cfg.Type
	if typ == "" {
		typ = DefaultType
	}

	newTransport := registry.TransportRegistry().Get(typ)
	if newTransport == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransport, typ)
	}

	readBufferSize, err := parsing.ParseSize(cfg.ReadBufferSize)
	if err != nil {
		return nil, fmt.Errorf("transport %s: read buffer: %w", typ, err)
	}

	log := logger.Default().WithFields(map[string]any{
		"kind":      "transport",
		"transport": typ,
	})

	tr := newTransport(
		transport.AddrOption(cfg.Addr),
		transport.TargetOption(cfg.Target),
		transport.NetnsOption(cfg.Netns),
		transport.ReadBufferSizeOption(readBufferSize),
		transport.StatsOption(st),
		transport.LoggerOption(log),
	)
	if err := tr.Init(); err != nil {
		tr.Close()
		return nil, fmt.Errorf("transport %s: %w", typ, err)
	}
	return tr, nil
}
