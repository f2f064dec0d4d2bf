package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-gost/seermon/config"
	"github.com/go-gost/seermon/config/parsing"
	"github.com/go-gost/seermon/corpus"
	"github.com/go-gost/seermon/internal/loader"
)

var (
	ErrNoSource = errors.New("corpus: no source configured")
)

// ParseCorpus generates or loads the corpus described by cfg.
// A fixture takes precedence over file, http and redis sources.
func ParseCorpus(ctx context.Context, cfg *config.CorpusConfig) (*corpus.Corpus, error) {
	if cfg == nil {
		return nil, ErrNoSource
	}

	if cfg.Fixture != nil {
		entries, err := corpus.Fixture(corpus.FixtureOptions{
			Count:   cfg.Fixture.Count,
			SrcMAC:  cfg.Fixture.SrcMAC,
			DstMAC:  cfg.Fixture.DstMAC,
			SrcIP:   cfg.Fixture.SrcIP,
			DstIP:   cfg.Fixture.DstIP,
			DstPort: cfg.Fixture.DstPort,
		})
		if err != nil {
			return nil, err
		}
		return corpus.FromEntries(entries)
	}

	maxSize, err := parsing.ParseSize(cfg.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("corpus: max size: %w", err)
	}

	var entries []corpus.Entry
	switch {
	case cfg.File != "":
		entries, err = load(ctx, loader.FileLoader(cfg.File,
			loader.MaxSizeFileLoaderOption(int64(maxSize))))
	case cfg.HTTP != nil && cfg.HTTP.URL != "":
		entries, err = load(ctx, loader.HTTPLoader(cfg.HTTP.URL,
			loader.TimeoutHTTPLoaderOption(cfg.HTTP.Timeout),
			loader.MaxSizeHTTPLoaderOption(int64(maxSize))))
	case cfg.Redis != nil && cfg.Redis.Addr != "":
		opts := []loader.RedisLoaderOption{
			loader.MaxSizeRedisLoaderOption(int64(maxSize)),
			loader.DBRedisLoaderOption(cfg.Redis.DB),
			loader.UsernameRedisLoaderOption(cfg.Redis.Username),
			loader.PasswordRedisLoaderOption(cfg.Redis.Password),
			loader.KeyRedisLoaderOption(cfg.Redis.Key),
		}
		switch cfg.Redis.Type {
		case "list": // one entry per element
			entries, err = loadList(ctx, loader.RedisListLoader(cfg.Redis.Addr, opts...))
		default: // one document
			entries, err = load(ctx, loader.RedisStringLoader(cfg.Redis.Addr, opts...))
		}
	default:
		return nil, ErrNoSource
	}
	if err != nil {
		return nil, err
	}

	return corpus.FromEntries(entries)
}

func load(ctx context.Context, ld loader.Loader) ([]corpus.Entry, error) {
	defer ld.Close()

	r, err := ld.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	return corpus.Decode(r)
}

func loadList(ctx context.Context, ld loader.Loader) ([]corpus.Entry, error) {
	defer ld.Close()

	lister, ok := ld.(loader.Lister)
	if !ok {
		return load(ctx, ld)
	}
	items, err := lister.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]corpus.Entry, 0, len(items))
	for i, s := range items {
		e, err := corpus.DecodeEntry(s)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
