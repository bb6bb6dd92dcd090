package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string // file (default), redis or none
	Dir      string // file backend directory
	RedisURL string // redis backend URL
	Prefix   string // redis key prefix, DefaultRedisPrefix if empty
}

// Open creates the cache described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return NewNullCache(), nil
		}
		fc, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		prefix := opts.Prefix
		if prefix == "" {
			prefix = DefaultRedisPrefix
		}
		rc, err := NewRedisCache(ctx, opts.RedisURL, prefix)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
