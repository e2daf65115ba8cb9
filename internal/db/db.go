// Package db defines the key-value store contract used by the
// embedding cache.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrKeyNotFound signals a missing key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the key-value facade the embedding cache runs on.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides plain key-value operations. Cache entries always
// carry a TTL, so there is no non-expiring Set.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Op identifies the store operation that failed.
type Op string

// Store operations.
const (
	OpGet Op = "get"
	OpSet Op = "set"
)

// Error wraps a backend failure with the operation that caused it.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("db %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }
