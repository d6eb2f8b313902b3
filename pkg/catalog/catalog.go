// Package catalog loads and indexes the schema descriptors that bind client
// config files to decoders. Schemas are data, not code: each YAML file in
// the catalog directory declares one document schema.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lodeworks/lodestone/pkg/schema"
)

// Catalog is an immutable, validated set of schemas indexed by name and by
// filename pattern.
type Catalog struct {
	schemas []*schema.Schema
	byName  map[string]*schema.Schema
}

// Load reads every *.yaml / *.yml file in dir as one schema descriptor,
// validates each, and rejects duplicate schema names. Match-pattern lookup
// is deterministic: schemas are consulted in name order.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	c := &Catalog{byName: make(map[string]*schema.Schema)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		s, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate schema name %q", path, s.Name)
		}
		c.byName[s.Name] = s
		c.schemas = append(c.schemas, s)
	}

	sort.Slice(c.schemas, func(i, j int) bool {
		return c.schemas[i].Name < c.schemas[j].Name
	})
	return c, nil
}

func loadFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var s schema.Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: failed to parse schema: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Lookup returns the schema with the given name.
func (c *Catalog) Lookup(name string) (*schema.Schema, bool) {
	s, ok := c.byName[name]
	return s, ok
}

// MatchFile returns the first schema (in name order) whose match pattern
// covers the file's base name.
func (c *Catalog) MatchFile(filename string) (*schema.Schema, bool) {
	base := filepath.Base(filename)
	for _, s := range c.schemas {
		if s.Match == "" {
			continue
		}
		// Patterns were validated at load time.
		if ok, _ := filepath.Match(s.Match, base); ok {
			return s, true
		}
	}
	return nil, false
}

// Names returns all schema names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.schemas))
	for _, s := range c.schemas {
		names = append(names, s.Name)
	}
	return names
}

// Schemas returns all schemas in name order.
func (c *Catalog) Schemas() []*schema.Schema {
	return c.schemas
}

// Len returns the number of schemas in the catalog.
func (c *Catalog) Len() int {
	return len(c.schemas)
}
