// Package config reads the declarative client document and the optional
// tool settings file. Formats are selected by file extension; yaml and json
// are supported.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/clientry/clientry/core/resolve"
)

var (
	// ErrSourceUnavailable is returned when the source document cannot be
	// opened or read.
	ErrSourceUnavailable = errors.New("config: source unavailable")
	// ErrMalformedSource is returned when the source document cannot be
	// parsed into client entries.
	ErrMalformedSource = errors.New("config: malformed source")
)

// Document is the top-level shape of a client definition file.
type Document struct {
	Clients []resolve.RawEntry `json:"clients"`
}

// Load reads the client declarations at path in document order.
func Load(path string) ([]resolve.RawEntry, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSource, path, err)
	}
	var doc Document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSource, path, err)
	}
	return doc.Clients, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported source format %q", ErrMalformedSource, filepath.Ext(path))
	}
}
