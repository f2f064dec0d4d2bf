package pass

import (
	"testing"

	"github.com/go-gost/seermon/config"
	"github.com/go-gost/seermon/corpus"
	xlogger "github.com/go-gost/seermon/logger"
	"github.com/go-gost/seermon/monitor"
	"github.com/go-gost/seermon/registry"
	"github.com/go-gost/seermon/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerbosity(t *testing.T) {
	v, err := ParseVerbosity("")
	require.NoError(t, err)
	assert.Equal(t, monitor.VerbosityVerbose, v)

	v, err = ParseVerbosity("MINIMAL")
	require.NoError(t, err)
	assert.Equal(t, monitor.VerbosityMinimal, v)

	_, err = ParseVerbosity("chatty")
	assert.Error(t, err)
}

func TestParsePass(t *testing.T) {
	opts, err := ParsePass(&config.PassConfig{
		Verbosity:   "minimal",
		ListenFirst: true,
		Rate:        100,
		Recorder:    "verdicts",
	}, "seer src 10.0.0.0/8")
	require.NoError(t, err)

	var options monitor.Options
	for _, opt := range opts {
		opt(&options)
	}
	assert.Equal(t, monitor.VerbosityMinimal, options.Verbosity)
	assert.True(t, options.ListenFirst)
	assert.NotNil(t, options.RateLimiter)
	assert.NotNil(t, options.Recorder)
	assert.Equal(t, "seer src 10.0.0.0/8", options.Filter.String())

	c, err := corpus.New()
	require.NoError(t, err)
	assert.NotNil(t, monitor.New(c, opts...))
}

func TestParsePassBadFilter(t *testing.T) {
	_, err := ParsePass(nil, "tcp port 80")
	assert.ErrorIs(t, err, transport.ErrInvalidFilter)
}

func TestParsePassLogger(t *testing.T) {
	_, err := ParsePass(&config.PassConfig{Logger: "missing"}, "seer")
	assert.ErrorIs(t, err, ErrUnknownLogger)

	log := xlogger.Nop()
	require.NoError(t, registry.LoggerRegistry().Register("pass-log", log))
	defer registry.LoggerRegistry().Unregister("pass-log")

	opts, err := ParsePass(&config.PassConfig{Logger: "pass-log"}, "seer")
	require.NoError(t, err)
	var options monitor.Options
	for _, opt := range opts {
		opt(&options)
	}
	assert.Equal(t, log, options.Logger)
}
