package store

import (
	"context"
	"errors"

	"spendwise/internal/logger"
)

// Fallback reads from the authoritative primary store and falls back to the
// secondary on any failure, including absence. Writes go to the primary
// only; use Mirror for dual writes.
type Fallback struct {
	primary   Store
	secondary Store
}

// NewFallback composes a read-side fallback over two stores.
func NewFallback(primary, secondary Store) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

// Get tries the primary store first and falls back to the secondary.
func (f *Fallback) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := f.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrNotFound) {
		logger.Log.Warn().Err(err).Str("key", key).Msg("Primary store read failed, falling back")
	}
	return f.secondary.Get(ctx, key)
}

// Put delegates to the primary store.
func (f *Fallback) Put(ctx context.Context, key string, value []byte) error {
	return f.primary.Put(ctx, key, value)
}

// Mirror writes every value to both stores. The two writes are independent:
// either may fail without preventing the other, and failures are logged
// rather than returned. Reads come from the primary.
type Mirror struct {
	primary   Store
	secondary Store
}

// NewMirror composes a write-side mirror over two stores.
func NewMirror(primary, secondary Store) *Mirror {
	return &Mirror{primary: primary, secondary: secondary}
}

// Get reads from the primary store.
func (m *Mirror) Get(ctx context.Context, key string) ([]byte, error) {
	return m.primary.Get(ctx, key)
}

// Put writes to both stores. Always returns nil; per-store failures are
// logged events, not caller errors.
func (m *Mirror) Put(ctx context.Context, key string, value []byte) error {
	if err := m.primary.Put(ctx, key, value); err != nil {
		logger.Log.Warn().Err(err).Str("key", key).Msg("Primary store write failed")
	}
	if err := m.secondary.Put(ctx, key, value); err != nil {
		logger.Log.Warn().Err(err).Str("key", key).Msg("Secondary store write failed")
	}
	return nil
}
