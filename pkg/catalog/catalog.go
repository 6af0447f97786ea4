// Package catalog loads and queries the data space type catalog.
//
// The catalog is a static document enumerating every entity type the data
// space declares, together with a free-text description and the list of
// attributes each type carries. It is loaded once at startup, validated,
// and never mutated afterwards, so a single *Catalog value can be shared
// by any number of concurrent readers without synchronization.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Attribute describes a single attribute declared by a catalog type.
type Attribute struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// TypeEntry describes one entity type declared by the data space.
type TypeEntry struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Attributes  []Attribute `json:"attributes" yaml:"attributes"`
}

// Catalog holds the declared entity types in declaration order.
type Catalog struct {
	entries []TypeEntry
	names   map[string]struct{}
}

// document mirrors the on-disk catalog shape: a "data_space" object whose
// "types" list holds one single-key object per type, keyed by type name.
// The list order is the catalog's declaration order.
type document struct {
	DataSpace struct {
		Types []map[string]typeData `json:"types" yaml:"types"`
	} `json:"data_space" yaml:"data_space"`
}

type typeData struct {
	Description string      `json:"description" yaml:"description"`
	Attributes  []Attribute `json:"attributes" yaml:"attributes"`
}

// Load reads a catalog document from path. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON. Any read, decode, or
// validation failure is returned as an error; callers are expected to
// treat a failed load at startup as fatal.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse decodes a JSON catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return build(doc)
}

// ParseYAML decodes a YAML catalog document.
func ParseYAML(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return build(doc)
}

// New builds a catalog directly from entries, in the given order. It is
// mostly useful in tests and for embedding a fixed catalog in a binary.
func New(entries []TypeEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]TypeEntry, 0, len(entries)),
		names:   make(map[string]struct{}, len(entries)),
	}
	for _, entry := range entries {
		if err := c.add(entry); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func build(doc document) (*Catalog, error) {
	types := doc.DataSpace.Types
	c := &Catalog{
		entries: make([]TypeEntry, 0, len(types)),
		names:   make(map[string]struct{}, len(types)),
	}

	for i, raw := range types {
		// One type per list element keeps declaration order well defined;
		// a multi-key object has no stable order once decoded.
		if len(raw) != 1 {
			return nil, fmt.Errorf("catalog entry %d: expected exactly one type, got %d", i, len(raw))
		}
		for name, data := range raw {
			entry := TypeEntry{
				Name:        name,
				Description: data.Description,
				Attributes:  data.Attributes,
			}
			if err := c.add(entry); err != nil {
				return nil, fmt.Errorf("catalog entry %d: %w", i, err)
			}
		}
	}

	return c, nil
}

func (c *Catalog) add(entry TypeEntry) error {
	if strings.TrimSpace(entry.Name) == "" {
		return fmt.Errorf("empty type name")
	}
	if _, ok := c.names[entry.Name]; ok {
		return fmt.Errorf("duplicate type %q", entry.Name)
	}
	c.entries = append(c.entries, entry)
	c.names[entry.Name] = struct{}{}
	return nil
}

// Exists reports whether a type with the given name is declared.
func (c *Catalog) Exists(name string) bool {
	_, ok := c.names[name]
	return ok
}

// Types returns all entries in declaration order. The returned slice is a
// copy; the entries themselves share the catalog's attribute slices and
// must not be modified.
func (c *Catalog) Types() []TypeEntry {
	return append([]TypeEntry(nil), c.entries...)
}

// Len returns the number of declared types.
func (c *Catalog) Len() int {
	return len(c.entries)
}
