package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientry/clientry/core/factory"
	"github.com/clientry/clientry/infra/logger"
)

type fakeStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{data: map[string][]byte{}} }

func (s *fakeStore) Fetch(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *fakeStore) Save(key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func TestNewHTTPClientValidation(t *testing.T) {
	_, err := NewHTTPClient("api", HTTPConfig{}, nil, 0, logger.NopLogger{})
	require.ErrorContains(t, err, "endpoint is required")

	_, err = NewHTTPClient("api", HTTPConfig{Endpoint: "not a url"}, nil, 0, logger.NopLogger{})
	require.ErrorContains(t, err, "invalid endpoint")
}

func TestHTTPClientGet(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/v1/status", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, err := NewHTTPClient("api", HTTPConfig{Endpoint: srv.URL, AuthToken: "tok"}, nil, 0, logger.NopLogger{})
	require.NoError(t, err)

	body, err := c.Get(context.Background(), "/v1/status")
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, 1, hits)
}

func TestHTTPClientGetUsesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	store := newFakeStore()
	c, err := NewHTTPClient("api", HTTPConfig{Endpoint: srv.URL}, store, time.Minute, logger.NopLogger{})
	require.NoError(t, err)

	first, err := c.Get(context.Background(), "/data")
	require.NoError(t, err)
	second, err := c.Get(context.Background(), "/data")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits, "second get must be served from the cache")
}

func TestHTTPClientGetErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := NewHTTPClient("api", HTTPConfig{Endpoint: srv.URL, RetryMax: 1}, nil, 0, logger.NopLogger{})
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "/missing")
	require.ErrorContains(t, err, "unexpected status 404")
}

func TestHTTPFactoryRegistered(t *testing.T) {
	inst, err := factory.Clients.Create("clients/http", factory.BuildContext{
		Name: "api",
		Params: map[string]string{
			"endpoint":  "https://api.example.com",
			"retry_max": "2",
		},
		Log: logger.NopLogger{},
	})
	require.NoError(t, err)
	c, ok := inst.(*HTTPClient)
	require.True(t, ok)
	assert.Equal(t, "https://api.example.com", c.Endpoint())
	assert.Equal(t, 2, c.http.RetryMax)
}
