package recorder

import (
	"context"
	"time"

	"github.com/go-gost/core/metrics"
	xmetrics "github.com/go-gost/seermon/metrics"
	"github.com/go-redis/redis/v8"
)

const (
	DefaultRedisKey = "seermon:records"
)

type redisRecorderOptions struct {
	recorder string
	db       int
	username string
	password string
	key      string
}

type RedisRecorderOption func(opts *redisRecorderOptions)

func RecorderRedisRecorderOption(recorder string) RedisRecorderOption {
	return func(opts *redisRecorderOptions) {
		opts.recorder = recorder
	}
}

func DBRedisRecorderOption(db int) RedisRecorderOption {
	return func(opts *redisRecorderOptions) {
		opts.db = db
	}
}

func UsernameRedisRecorderOption(username string) RedisRecorderOption {
	return func(opts *redisRecorderOptions) {
		opts.username = username
	}
}

func PasswordRedisRecorderOption(password string) RedisRecorderOption {
	return func(opts *redisRecorderOptions) {
		opts.password = password
	}
}

func KeyRedisRecorderOption(key string) RedisRecorderOption {
	return func(opts *redisRecorderOptions) {
		opts.key = key
	}
}

type redisRecorder struct {
	recorder string
	client   *redis.Client
	key      string
	write    func(ctx context.Context, client *redis.Client, key string, b []byte) error
}

func newRedisRecorder(addr string, write func(context.Context, *redis.Client, string, []byte) error, opts ...RedisRecorderOption) *redisRecorder {
	var options redisRecorderOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.key == "" {
		options.key = DefaultRedisKey
	}

	return &redisRecorder{
		recorder: options.recorder,
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Username: options.username,
			Password: options.password,
			DB:       options.db,
		}),
		key:   options.key,
		write: write,
	}
}

func (r *redisRecorder) Record(ctx context.Context, b []byte) error {
	xmetrics.GetCounter(xmetrics.MetricRecorderRecordsCounter, metrics.Labels{"recorder": r.recorder}).Inc()
	return r.write(ctx, r.client, r.key, b)
}

func (r *redisRecorder) Close() error {
	return r.client.Close()
}

// RedisSetRecorder records data to a redis set. Identical records collapse.
func RedisSetRecorder(addr string, opts ...RedisRecorderOption) Recorder {
	return newRedisRecorder(addr, func(ctx context.Context, client *redis.Client, key string, b []byte) error {
		return client.SAdd(ctx, key, b).Err()
	}, opts...)
}

// RedisListRecorder appends data to a redis list in arrival order.
func RedisListRecorder(addr string, opts ...RedisRecorderOption) Recorder {
	return newRedisRecorder(addr, func(ctx context.Context, client *redis.Client, key string, b []byte) error {
		return client.RPush(ctx, key, b).Err()
	}, opts...)
}

// RedisSortedSetRecorder records data to a redis sorted set scored by arrival time.
func RedisSortedSetRecorder(addr string, opts ...RedisRecorderOption) Recorder {
	return newRedisRecorder(addr, func(ctx context.Context, client *redis.Client, key string, b []byte) error {
		return client.ZAdd(ctx, key, &redis.Z{
			Score:  float64(time.Now().UnixNano()),
			Member: b,
		}).Err()
	}, opts...)
}
