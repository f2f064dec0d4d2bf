package loader

import (
	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/config"
	logger_parser "github.com/go-gost/seermon/config/parsing/logger"
	recorder_parser "github.com/go-gost/seermon/config/parsing/recorder"
	"github.com/go-gost/seermon/registry"
)

var (
	defaultLoader *loader = &loader{}
)

// Load sets the default logger from cfg and (re)registers the named
// loggers and recorders.
func Load(cfg *config.Config) error {
	return defaultLoader.Load(cfg)
}

type loader struct{}

func (l *loader) Load(cfg *config.Config) error {
	logCfg := cfg.Log
	if logCfg == nil {
		logCfg = &config.LogConfig{}
	}
	log, err := logger_parser.ParseLogger(&config.LoggerConfig{Log: logCfg})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	return register(cfg)
}

func register(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for name := range registry.LoggerRegistry().GetAll() {
		registry.LoggerRegistry().Unregister(name)
	}
	for _, loggerCfg := range cfg.Loggers {
		log, err := logger_parser.ParseLogger(loggerCfg)
		if err != nil {
			return err
		}
		if log == nil {
			logger.Default().Warnf("logger %s: no log section configured", loggerCfg.Name)
			continue
		}
		if err := registry.LoggerRegistry().Register(loggerCfg.Name, log); err != nil {
			return err
		}
	}

	for name := range registry.RecorderRegistry().GetAll() {
		registry.RecorderRegistry().Unregister(name)
	}
	for _, recorderCfg := range cfg.Recorders {
		r, err := recorder_parser.ParseRecorder(recorderCfg)
		if err != nil {
			return err
		}
		if r == nil {
			logger.Default().Warnf("recorder %s: no backend configured", recorderCfg.Name)
			continue
		}
		if err := registry.RecorderRegistry().Register(recorderCfg.Name, r); err != nil {
			return err
		}
	}

	return nil
}
