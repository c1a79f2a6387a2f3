package devstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := Open(path)

	require.NoError(t, store.Set("token", "abc123"))
	require.NoError(t, store.Set("count", 7))

	var token string
	require.True(t, store.Get("token", &token))
	assert.Equal(t, "abc123", token)

	var count int
	require.True(t, store.Get("count", &count))
	assert.Equal(t, 7, count)

	require.NoError(t, store.Delete("token"))
	assert.False(t, store.Get("token", &token))
}

func TestPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	store := Open(path)
	require.NoError(t, store.Set("key", map[string]string{"a": "b"}))

	reopened := Open(path)
	var value map[string]string
	require.True(t, reopened.Get("key", &value))
	assert.Equal(t, "b", value["a"])
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := Open(path)
	var out string
	assert.False(t, store.Get("anything", &out))

	// The store must still be writable after recovering.
	require.NoError(t, store.Set("key", "value"))
	require.True(t, store.Get("key", &out))
	assert.Equal(t, "value", out)
}

func TestMissingFile(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "does-not-exist.json"))
	var out string
	assert.False(t, store.Get("key", &out))
}

func TestWrongShapeValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := Open(path)
	require.NoError(t, store.Set("key", "a string"))

	var out []int
	assert.False(t, store.Get("key", &out), "type mismatch reads as absent")
}
