package pass

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/config"
	"github.com/go-gost/seermon/limiter/rate"
	"github.com/go-gost/seermon/monitor"
	"github.com/go-gost/seermon/registry"
	"github.com/go-gost/seermon/transport"
)

var (
	ErrUnknownLogger = errors.New("pass: unknown logger")
)

// ParseVerbosity maps minimal|verbose to a monitor verbosity. The
// empty string is verbose.
func ParseVerbosity(s string) (monitor.Verbosity, error) {
	switch strings.ToLower(s) {
	case "", "verbose":
		return monitor.VerbosityVerbose, nil
	case "minimal":
		return monitor.VerbosityMinimal, nil
	default:
		return 0, fmt.Errorf("pass: unknown verbosity %q", s)
	}
}

// ParsePass converts the pass and filter sections into monitor options.
func ParsePass(cfg *config.PassConfig, filter string) ([]monitor.Option, error) {
	if cfg == nil {
		cfg = &config.PassConfig{}
	}

	verbosity, err := ParseVerbosity(cfg.Verbosity)
	if err != nil {
		return nil, err
	}
	f, err := transport.ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	log := logger.Default()
	if cfg.Logger != "" {
		log = registry.LoggerRegistry().Get(cfg.Logger)
		if log == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLogger, cfg.Logger)
		}
	}

	opts := []monitor.Option{
		monitor.VerbosityOption(verbosity),
		monitor.FilterOption(f),
		monitor.ListenFirstOption(cfg.ListenFirst),
		monitor.LoggerOption(log),
	}
	if cfg.Recorder != "" {
		opts = append(opts, monitor.RecorderOption(registry.RecorderRegistry().Get(cfg.Recorder)))
	}
	if limiter := rate.NewLimiter(cfg.Rate, cfg.Burst); limiter != nil {
		opts = append(opts, monitor.RateLimiterOption(limiter))
	}
	return opts, nil
}
