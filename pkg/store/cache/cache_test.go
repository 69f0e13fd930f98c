package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	in := map[string]string{"5": "Factura Electrónica", "12": "Boleta"}
	require.NoError(t, store.Save("document_types", in))

	var out map[string]string
	hit, err := store.Load("document_types", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestFSStore_MissingEntryIsAMiss(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	var out map[string]string
	hit, err := store.Load("offices", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestFSStore_MalformedEntryIsAMiss(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o644))

	var out map[string]string
	hit, err := store.Load("users", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNewFSStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	_, err := NewFSStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
