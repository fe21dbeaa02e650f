package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reel.db")

	s, err := NewKVStore(path)
	require.NoError(t, err)
	assert.True(t, s.Persistent())
	require.NoError(t, s.Set("netflix_clone_favorites", `[{"id":1}]`))
	require.NoError(t, s.Close())

	s, err = NewKVStore(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("netflix_clone_favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)
}

func TestKVStore_GetMissing(t *testing.T) {
	s, err := NewKVStore(filepath.Join(t.TempDir(), "reel.db"))
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestKVStore_DeleteAndClear(t *testing.T) {
	s, err := NewKVStore(filepath.Join(t.TempDir(), "reel.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Set("c", "3"))

	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("missing"))
	_, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear())
	for _, k := range []string{"b", "c"} {
		_, ok, err := s.Get(k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
}

func TestMemoryStore(t *testing.T) {
	s, err := NewKVStore("")
	require.NoError(t, err)
	assert.False(t, s.Persistent())

	require.NoError(t, s.Set("k", "v1"))
	require.NoError(t, s.Set("k", "v2"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.Clear())
	_, ok, _ = s.Get("k")
	assert.False(t, ok)
	assert.NoError(t, s.Close())
}
