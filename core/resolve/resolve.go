// Package resolve flattens raw client declarations into the canonical
// resolution table. Declarations are processed in document order; an entry
// may extend any entry declared before it, inheriting the parent's
// implementation identifier and resolved parameters. Forward references are
// rejected, which makes extension cycles structurally impossible.
package resolve

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedParent is returned when an entry extends a name that has
	// not been resolved earlier in the document.
	ErrUnresolvedParent = errors.New("resolve: unresolved parent")
	// ErrMissingClass is returned when an entry ends up with no
	// implementation identifier after inheritance.
	ErrMissingClass = errors.New("resolve: missing class")
)

// Param is a single declared parameter. Declarations keep their document
// order so that later pairs with the same name overwrite earlier ones.
type Param struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawEntry is one client declaration as read from the source document.
type RawEntry struct {
	Name    string  `json:"name"`
	Class   string  `json:"class"`
	Extends string  `json:"extends"`
	Params  []Param `json:"params"`
}

// Entry is a fully resolved client definition.
type Entry struct {
	// Impl is the normalized implementation identifier, with the
	// dot-separated namespace form converted to a slash-separated path.
	Impl string `json:"impl"`
	// Params holds the merged parameter map. Own declarations win over
	// inherited ones.
	Params map[string]string `json:"params"`
}

// Table maps client names to their resolved definitions. Duplicated names
// resolve last-wins.
type Table map[string]Entry

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for name, e := range t {
		params := make(map[string]string, len(e.Params))
		for k, v := range e.Params {
			params[k] = v
		}
		out[name] = Entry{Impl: e.Impl, Params: params}
	}
	return out
}

// Resolve flattens entries into a Table in a single forward pass.
func Resolve(entries []RawEntry) (Table, error) {
	table := make(Table, len(entries))
	for _, raw := range entries {
		impl := raw.Class
		params := make(map[string]string, len(raw.Params))

		if raw.Extends != "" {
			parent, ok := table[raw.Extends]
			if !ok {
				return nil, fmt.Errorf("%w: entry %q extends %q", ErrUnresolvedParent, raw.Name, raw.Extends)
			}
			if impl == "" {
				impl = parent.Impl
			}
			for k, v := range parent.Params {
				params[k] = v
			}
		}

		for _, p := range raw.Params {
			params[p.Name] = p.Value
		}

		if impl == "" {
			return nil, fmt.Errorf("%w: entry %q", ErrMissingClass, raw.Name)
		}

		table[raw.Name] = Entry{Impl: NormalizeClass(impl), Params: params}
	}
	return table, nil
}

// NormalizeClass converts a dot-separated class identifier into the
// slash-separated path form factories register under. Already normalized
// identifiers pass through unchanged.
func NormalizeClass(class string) string {
	return strings.ReplaceAll(class, ".", "/")
}
