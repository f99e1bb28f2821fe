package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/clientry/clientry/core/resolve"
)

func writeSource(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeSource(t, "clients.yaml", `clients:
  - name: base
    class: clients.http
    params:
      - name: endpoint
        value: "https://api.example.com"
      - name: retry_max
        value: "3"
  - name: billing
    extends: base
    params:
      - name: retry_max
        value: "5"
`)
	entries, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries got %d", len(entries))
	}
	if entries[0].Name != "base" || entries[0].Class != "clients.http" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	want := []resolve.Param{
		{Name: "endpoint", Value: "https://api.example.com"},
		{Name: "retry_max", Value: "3"},
	}
	if len(entries[0].Params) != len(want) {
		t.Fatalf("expected %d params got %d", len(want), len(entries[0].Params))
	}
	for i, p := range entries[0].Params {
		if p != want[i] {
			t.Errorf("param %d mismatch: got %+v want %+v", i, p, want[i])
		}
	}
	if entries[1].Extends != "base" {
		t.Errorf("extends not read: %+v", entries[1])
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeSource(t, "clients.json", `{
  "clients": [
    {"name": "metrics", "class": "clients.influx", "params": [
      {"name": "url", "value": "http://localhost:8086"}
    ]}
  ]
}`)
	entries, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(entries) != 1 || entries[0].Class != "clients.influx" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeSource(t, "clients.yaml", "clients: [::nope\n")
	_, err := Load(path)
	if !errors.Is(err, ErrMalformedSource) {
		t.Fatalf("expected ErrMalformedSource got %v", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeSource(t, "clients.toml", "clients = []\n")
	_, err := Load(path)
	if !errors.Is(err, ErrMalformedSource) {
		t.Fatalf("expected ErrMalformedSource got %v", err)
	}
}
