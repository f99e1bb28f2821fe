package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Save("k", []byte("v"), time.Minute))

	got, ok := s.Fetch("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestFileStoreMiss(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	_, ok := s.Fetch("absent")
	assert.False(t, ok)
}

func TestFileStoreExpiry(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save("k", []byte("v"), 5*time.Millisecond))
	time.Sleep(15 * time.Millisecond)

	_, ok := s.Fetch("k")
	assert.False(t, ok)
	// Expired entries are removed on read.
	_, statErr := os.Stat(filepath.Join(dir, "k.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStoreCorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k.json"), []byte("{broken"), 0o644))

	_, ok := s.Fetch("k")
	assert.False(t, ok)
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save("../escape", []byte("v"), time.Minute))

	got, ok := s.Fetch("../escape")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "___escape.json", entries[0].Name())
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save("k", []byte("v"), time.Minute))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, ok := reopened.Fetch("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}
