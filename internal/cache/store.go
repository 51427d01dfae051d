package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by a Store when the key is absent.
var ErrNotFound = errors.New("key not found")

// Store is a flat string key/value store with atomic per-key get and set.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend enumerates supported stores.
type Backend string

const (
	// BackendRedis persists entries in Redis (or a compatible server such as KeyDB).
	BackendRedis Backend = "redis"
	// BackendBolt persists entries in a local bbolt file.
	BackendBolt Backend = "bolt"
	// BackendMemory keeps entries in-process.
	BackendMemory Backend = "memory"
)

// ParseBackend converts a configuration string into a Backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendRedis, BackendBolt, BackendMemory:
		return b, nil
	case "keydb":
		return BackendRedis, nil
	default:
		return "", fmt.Errorf("unknown cache backend %q", s)
	}
}

// Options selects and configures a store.
type Options struct {
	Backend Backend
	Redis   RedisConfig
	Bolt    BoltConfig
}

// Open connects to the configured store. The caller owns the returned store
// and must Close it.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendRedis, "":
		return NewRedisStore(ctx, opts.Redis)
	case BackendBolt:
		return NewBoltStore(opts.Bolt)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
