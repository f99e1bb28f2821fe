package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore persists entries as one JSON file per key under a directory.
// Expiry is checked on read; expired files are removed lazily.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

type fileEnvelope struct {
	Expires time.Time `json:"expires"`
	Value   []byte    `json:"value"`
}

// Fetch returns the value stored under key. Missing, expired or unreadable
// entries report a miss.
func (s *FileStore) Fetch(key string) ([]byte, bool) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	var env fileEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	if time.Now().After(env.Expires) {
		_ = os.Remove(s.path(key))
		return nil, false
	}
	return env.Value, true
}

// Save stores value under key for ttl. The write goes through a temp file
// and rename so a concurrent Fetch never sees a partial entry.
func (s *FileStore) Save(key string, value []byte, ttl time.Duration) error {
	raw, err := json.Marshal(fileEnvelope{Expires: time.Now().Add(ttl), Value: value})
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *FileStore) path(key string) string {
	// Keys are digests, but sanitize anyway so arbitrary keys cannot
	// escape the cache directory.
	key = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.dir, key+".json")
}
