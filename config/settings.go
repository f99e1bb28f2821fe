package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// CacheSettings selects and parameterizes the cache backend wired into a
// build.
type CacheSettings struct {
	// Backend selects the store type: "none", "memory" or "file".
	Backend string `json:"backend"`
	// Dir is the directory of the file backend.
	Dir string `json:"dir"`
	// TTLSeconds is the lifetime of cached resolution tables.
	TTLSeconds int `json:"ttl_seconds"`
}

// Settings are the tool-level options, as opposed to the client document
// itself.
type Settings struct {
	Cache CacheSettings `json:"cache"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
}

// SetDefaults applies sane defaults.
func (s *Settings) SetDefaults() {
	if s.Cache.Backend == "" {
		s.Cache.Backend = "none"
	}
	if s.Cache.Dir == "" {
		s.Cache.Dir = ".clientry-cache"
	}
	if s.Cache.TTLSeconds <= 0 {
		s.Cache.TTLSeconds = int((24 * time.Hour).Seconds())
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
}

// Validate checks field values after defaults are applied.
func (s Settings) Validate() error {
	switch s.Cache.Backend {
	case "none", "memory", "file":
	default:
		return fmt.Errorf("unknown cache backend %s", s.Cache.Backend)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %s", s.LogLevel)
	}
	return nil
}

// TTL returns the cache lifetime as a duration.
func (s Settings) TTL() time.Duration {
	return time.Duration(s.Cache.TTLSeconds) * time.Second
}

// LoadSettings reads tool settings from path, then applies environment
// overrides with the CLIENTRY_ prefix ("__" nests keys, so
// CLIENTRY_CACHE__BACKEND=file overrides cache.backend). An empty path
// yields defaults plus environment overrides.
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
		}
	}
	if err := k.Load(env.Provider("CLIENTRY_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "clientry_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var s Settings
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	s.SetDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
