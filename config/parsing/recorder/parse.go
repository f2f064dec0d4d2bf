package recorder

import (
	"fmt"
	"net/http"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/config"
	"github.com/go-gost/seermon/config/parsing"
	"github.com/go-gost/seermon/recorder"
)

// ParseRecorder builds the first recorder configured in cfg, nil if none
// is. File paths may start with ~.
func ParseRecorder(cfg *config.RecorderConfig) (recorder.Recorder, error) {
	if cfg == nil {
		return nil, nil
	}

	if cfg.File != nil && cfg.File.Path != "" {
		out, err := parsing.OpenOutput(cfg.File.Path, cfg.File.Rotation)
		if err != nil {
			return nil, fmt.Errorf("recorder %s: %w", cfg.Name, err)
		}

		sep := cfg.File.Sep
		if sep == "" {
			sep = "\n"
		}
		return recorder.FileRecorder(out,
			recorder.RecorderFileRecorderOption(cfg.Name),
			recorder.SepFileRecorderOption(sep),
			recorder.SyncFileRecorderOption(cfg.File.Sync),
		), nil
	}

	if cfg.TCP != nil && cfg.TCP.Addr != "" {
		return recorder.TCPRecorder(cfg.TCP.Addr,
			recorder.RecorderTCPRecorderOption(cfg.Name),
			recorder.TimeoutTCPRecorderOption(cfg.TCP.Timeout),
			recorder.LogTCPRecorderOption(logger.Default().WithFields(map[string]any{
				"kind":     "recorder",
				"recorder": cfg.Name,
			})),
		), nil
	}

	if cfg.HTTP != nil && cfg.HTTP.URL != "" {
		h := http.Header{}
		for k, v := range cfg.HTTP.Header {
			h.Add(k, v)
		}
		return recorder.HTTPRecorder(cfg.HTTP.URL,
			recorder.RecorderHTTPRecorderOption(cfg.Name),
			recorder.TimeoutHTTPRecorderOption(cfg.HTTP.Timeout),
			recorder.HeaderHTTPRecorderOption(h),
		), nil
	}

	if cfg.Redis != nil && cfg.Redis.Addr != "" {
		opts := []recorder.RedisRecorderOption{
			recorder.RecorderRedisRecorderOption(cfg.Name),
			recorder.DBRedisRecorderOption(cfg.Redis.DB),
			recorder.KeyRedisRecorderOption(cfg.Redis.Key),
			recorder.UsernameRedisRecorderOption(cfg.Redis.Username),
			recorder.PasswordRedisRecorderOption(cfg.Redis.Password),
		}
		switch cfg.Redis.Type {
		case "list": // redis list
			return recorder.RedisListRecorder(cfg.Redis.Addr, opts...), nil
		case "sset": // sorted set
			return recorder.RedisSortedSetRecorder(cfg.Redis.Addr, opts...), nil
		default: // redis set
			return recorder.RedisSetRecorder(cfg.Redis.Addr, opts...), nil
		}
	}

	return nil, nil
}
