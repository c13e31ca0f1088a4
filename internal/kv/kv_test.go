package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Load(ctx, "expenses")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Save(ctx, "expenses", []byte(`[{"id":"a"}]`)))
	v, ok, err := s.Load(ctx, "expenses")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":"a"}]`, string(v))

	require.NoError(t, s.Save(ctx, "expenses", []byte(`[]`)))
	v, ok, err = s.Load(ctx, "expenses")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, string(v))

	_, ok, err = s.Load(ctx, "categories")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemory(t *testing.T) {
	t.Parallel()
	s := NewMemory()
	exerciseStore(t, s)
	require.NoError(t, s.Close())
}

func TestBolt(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tally.bolt")
	s, err := OpenBolt(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := OpenBolt(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	v, ok, err := reopened.Load(context.Background(), "expenses")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, string(v))
}

func TestSQLite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tally.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	_, ok, err := reopened.Load(context.Background(), "expenses")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDir(t *testing.T) {
	t.Parallel()
	root := filepath.Join(t.TempDir(), "nested", "store")
	s, err := OpenDir(root)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.FileExists(t, filepath.Join(root, "expenses.json"))
	require.NoFileExists(t, filepath.Join(root, "expenses.json.tmp"))
}

type countingStore struct {
	*Memory
	loads   int
	failing bool
}

func (c *countingStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	c.loads++
	return c.Memory.Load(ctx, key)
}

func (c *countingStore) Save(ctx context.Context, key string, value []byte) error {
	if c.failing {
		return errors.New("disk full")
	}
	return c.Memory.Save(ctx, key, value)
}

func TestCached(t *testing.T) {
	t.Parallel()
	exerciseStore(t, NewCached(NewMemory(), time.Minute))

	ctx := context.Background()
	inner := &countingStore{Memory: NewMemory()}
	c := NewCached(inner, 0)

	_, ok, err := c.Load(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
	_, _, _ = c.Load(ctx, "k")
	require.Equal(t, 1, inner.loads)

	require.NoError(t, c.Save(ctx, "k", []byte("v1")))
	v, ok, err := c.Load(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", string(v))
	require.Equal(t, 1, inner.loads)

	inner.failing = true
	require.Error(t, c.Save(ctx, "k", []byte("v2")))
	v, _, err = c.Load(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v1", string(v))
	require.Equal(t, 2, inner.loads)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	for _, u := range []string{
		"mem://",
		filepath.Join(dir, "bare.bolt"),
		"bolt://" + filepath.Join(dir, "url.bolt"),
		"sqlite://" + filepath.Join(dir, "url.db"),
		"file://" + filepath.Join(dir, "json"),
	} {
		s, err := Open(ctx, u)
		require.NoError(t, err, u)
		exerciseStore(t, s)
		require.NoError(t, s.Close())
	}

	_, err := Open(ctx, "redis://localhost")
	require.ErrorContains(t, err, "unsupported store scheme")

	s, err := Open(ctx, "gs://")
	require.Error(t, err)
	require.Nil(t, s)
}
