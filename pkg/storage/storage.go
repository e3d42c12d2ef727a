// Package storage provides the blob store the data layer persists into.
// Each collection serializes to a single value under a single key, so every
// mutation is a full-collection read-modify-write, mirroring the browser
// localStorage layout the application replaces.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get when no value exists under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// Adapter is a pluggable key/blob store. Implementations must be safe for
// concurrent use; they are not required to provide any cross-key atomicity.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options carries driver-specific settings for Open.
type Options struct {
	// Dir is the data directory for the file driver.
	Dir string
	// RedisAddr and RedisPrefix configure the redis driver.
	RedisAddr   string
	RedisPrefix string
	// PostgresDSN configures the postgres driver.
	PostgresDSN string
}

// Open constructs an adapter for the named driver.
func Open(driver string, opts Options) (Adapter, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryAdapter(), nil
	case DriverFile:
		return NewFileAdapter(opts.Dir)
	case DriverRedis:
		return NewRedisAdapter(opts.RedisAddr, opts.RedisPrefix), nil
	case DriverPostgres:
		return NewPostgresAdapter(opts.PostgresDSN)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}
