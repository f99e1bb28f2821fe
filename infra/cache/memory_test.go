package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	require.NoError(t, s.Save("k", []byte("v"), time.Minute))

	got, ok := s.Fetch("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryStoreMiss(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	_, ok := s.Fetch("absent")
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	require.NoError(t, s.Save("k", []byte("v"), 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)
	_, ok := s.Fetch("k")
	assert.False(t, ok)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	require.NoError(t, s.Save("k", []byte("old"), time.Minute))
	require.NoError(t, s.Save("k", []byte("new"), time.Minute))
	got, _ := s.Fetch("k")
	assert.Equal(t, []byte("new"), got)
}

func TestMemoryStoreFlush(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	require.NoError(t, s.Save("k", []byte("v"), time.Minute))
	s.Flush()
	_, ok := s.Fetch("k")
	assert.False(t, ok)
}
