package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cabinext/cabinext/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string // none, file or redis; empty means file
	Dir     string // file backend directory; empty means DefaultDir()
	Redis   RedisConfig
}

// Open builds the cache named by opts.Backend.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch strings.ToLower(opts.Backend) {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be none, file or redis)", opts.Backend)
}

// DefaultDir returns ~/.cache/cabinext, honouring XDG_CACHE_HOME.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cabinext"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "cabinext"), nil
}
