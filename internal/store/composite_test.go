package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store whose reads and writes can be forced to
// fail.
type fakeStore struct {
	values  map[string][]byte
	getErr  error
	putErr  error
	puts    int
	lastPut []byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string][]byte)}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

func (f *fakeStore) Put(_ context.Context, key string, value []byte) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.values[key] = value
	f.lastPut = value
	return nil
}

func TestFallback(t *testing.T) {
	t.Parallel()

	t.Run("prefers the primary store", func(t *testing.T) {
		t.Parallel()
		primary := newFakeStore()
		secondary := newFakeStore()
		primary.values["expenses"] = []byte(`primary`)
		secondary.values["expenses"] = []byte(`secondary`)

		got, err := NewFallback(primary, secondary).Get(context.Background(), "expenses")
		require.NoError(t, err)
		require.Equal(t, []byte(`primary`), got)
	})

	t.Run("falls back on primary failure", func(t *testing.T) {
		t.Parallel()
		primary := newFakeStore()
		primary.getErr = errors.New("connection refused")
		secondary := newFakeStore()
		secondary.values["expenses"] = []byte(`secondary`)

		got, err := NewFallback(primary, secondary).Get(context.Background(), "expenses")
		require.NoError(t, err)
		require.Equal(t, []byte(`secondary`), got)
	})

	t.Run("falls back on primary absence", func(t *testing.T) {
		t.Parallel()
		primary := newFakeStore()
		secondary := newFakeStore()
		secondary.values["settings"] = []byte(`{}`)

		got, err := NewFallback(primary, secondary).Get(context.Background(), "settings")
		require.NoError(t, err)
		require.Equal(t, []byte(`{}`), got)
	})

	t.Run("returns ErrNotFound when both stores miss", func(t *testing.T) {
		t.Parallel()
		_, err := NewFallback(newFakeStore(), newFakeStore()).Get(context.Background(), "expenses")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMirror(t *testing.T) {
	t.Parallel()

	t.Run("writes both stores", func(t *testing.T) {
		t.Parallel()
		primary := newFakeStore()
		secondary := newFakeStore()

		require.NoError(t, NewMirror(primary, secondary).Put(context.Background(), "expenses", []byte(`[]`)))
		require.Equal(t, []byte(`[]`), primary.values["expenses"])
		require.Equal(t, []byte(`[]`), secondary.values["expenses"])
	})

	t.Run("primary failure does not prevent the secondary write", func(t *testing.T) {
		t.Parallel()
		primary := newFakeStore()
		primary.putErr = errors.New("quota exceeded")
		secondary := newFakeStore()

		require.NoError(t, NewMirror(primary, secondary).Put(context.Background(), "expenses", []byte(`[]`)))
		require.Equal(t, 1, primary.puts)
		require.Equal(t, []byte(`[]`), secondary.values["expenses"])
	})

	t.Run("secondary failure is absorbed", func(t *testing.T) {
		t.Parallel()
		primary := newFakeStore()
		secondary := newFakeStore()
		secondary.putErr = errors.New("disk full")

		require.NoError(t, NewMirror(primary, secondary).Put(context.Background(), "expenses", []byte(`[]`)))
		require.Equal(t, []byte(`[]`), primary.values["expenses"])
		require.Equal(t, 1, secondary.puts)
	})

	t.Run("reads come from the primary", func(t *testing.T) {
		t.Parallel()
		primary := newFakeStore()
		secondary := newFakeStore()
		primary.values["settings"] = []byte(`primary`)
		secondary.values["settings"] = []byte(`secondary`)

		got, err := NewMirror(primary, secondary).Get(context.Background(), "settings")
		require.NoError(t, err)
		require.Equal(t, []byte(`primary`), got)
	})
}
