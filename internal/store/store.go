// Package store provides the key-value persistence backends and their
// composition: a local sqlite store, a remote HTTP store, a read-side
// fallback and a write-side mirror.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("key not found")

// Store is the capability shared by all persistence backends.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
