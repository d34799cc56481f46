// Package kvstore defines the key-value persistence backend the storage
// service writes through, plus the backends shipped with the module. Values
// are strings (JSON documents); keys are opaque to the implementations.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is the key-value backend capability.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	RemoveMany(ctx context.Context, keys ...string) error
	Close() error
}
