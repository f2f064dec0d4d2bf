package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultRedisKey = "seermon:corpus"
)

type redisLoaderOptions struct {
	db       int
	username string
	password string
	key      string
	maxSize  int64
}

type RedisLoaderOption func(opts *redisLoaderOptions)

func DBRedisLoaderOption(db int) RedisLoaderOption {
	return func(opts *redisLoaderOptions) {
		opts.db = db
	}
}

func UsernameRedisLoaderOption(username string) RedisLoaderOption {
	return func(opts *redisLoaderOptions) {
		opts.username = username
	}
}

func PasswordRedisLoaderOption(password string) RedisLoaderOption {
	return func(opts *redisLoaderOptions) {
		opts.password = password
	}
}

func KeyRedisLoaderOption(key string) RedisLoaderOption {
	return func(opts *redisLoaderOptions) {
		opts.key = key
	}
}

func MaxSizeRedisLoaderOption(n int64) RedisLoaderOption {
	return func(opts *redisLoaderOptions) {
		opts.maxSize = n
	}
}

func newRedisClient(addr string, opts []RedisLoaderOption) (*redis.Client, string, int64) {
	var options redisLoaderOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	key := options.key
	if key == "" {
		key = DefaultRedisKey
	}
	if options.maxSize <= 0 {
		options.maxSize = DefaultMaxSize
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: options.username,
		Password: options.password,
		DB:       options.db,
	}), key, options.maxSize
}

type redisStringLoader struct {
	client  *redis.Client
	key     string
	maxSize int64
}

// RedisStringLoader loads data from redis string.
func RedisStringLoader(addr string, opts ...RedisLoaderOption) Loader {
	client, key, maxSize := newRedisClient(addr, opts)
	return &redisStringLoader{
		client:  client,
		key:     key,
		maxSize: maxSize,
	}
}

func (p *redisStringLoader) Load(ctx context.Context) (io.Reader, error) {
	n, err := p.client.StrLen(ctx, p.key).Result()
	if err != nil {
		return nil, err
	}
	if n > p.maxSize {
		return nil, fmt.Errorf("redis %s: %d bytes: %w", p.key, n, ErrTooLarge)
	}

	v, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(v), nil
}

func (p *redisStringLoader) Close() error {
	return p.client.Close()
}

type redisListLoader struct {
	client  *redis.Client
	key     string
	maxSize int64
}

// RedisListLoader loads data from redis list, one item per element in list order.
func RedisListLoader(addr string, opts ...RedisLoaderOption) Loader {
	client, key, maxSize := newRedisClient(addr, opts)
	return &redisListLoader{
		client:  client,
		key:     key,
		maxSize: maxSize,
	}
}

func (p *redisListLoader) Load(ctx context.Context) (io.Reader, error) {
	v, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader([]byte(strings.Join(v, "\n"))), nil
}

// List implements Lister interface{}
func (p *redisListLoader) List(ctx context.Context) ([]string, error) {
	items, err := p.client.LRange(ctx, p.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var n int64
	for _, item := range items {
		n += int64(len(item))
	}
	if n > p.maxSize {
		return nil, fmt.Errorf("redis %s: %d bytes: %w", p.key, n, ErrTooLarge)
	}
	return items, nil
}

func (p *redisListLoader) Close() error {
	return p.client.Close()
}
