package registry

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

//go:embed predefined.yaml
var predefinedYAML []byte

// file is the YAML layout of a registry file.
type file struct {
	Properties   []types.PropertyDefinition `yaml:"properties"`
	ExtraAliases map[string]string          `yaml:"extra_aliases"`
}

// Default returns a Registry holding the store's builtin predefined
// properties.
func Default(opts ...Option) (*Registry, error) {
	r := New(opts...)
	if err := r.Load(bytes.NewReader(predefinedYAML)); err != nil {
		return nil, fmt.Errorf("loading builtin properties: %w", err)
	}
	return r, nil
}

// Load reads a registry file and adds its definitions and extra aliases.
// Definitions with an ID already present replace the earlier one. On error
// nothing from the file is applied.
func (r *Registry) Load(rd io.Reader) error {
	var f file
	if err := yaml.NewDecoder(rd).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", types.ErrInvalidRegistry, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	staged := r.cloneLocked()
	for _, def := range f.Properties {
		if err := staged.addLocked(def); err != nil {
			return err
		}
	}
	for alias, id := range f.ExtraAliases {
		alias = normalizeLabel(alias)
		if alias == "" {
			return fmt.Errorf("%w: empty extra alias for %s", types.ErrInvalidRegistry, id)
		}
		if !types.IsPredefinedID(id) {
			return fmt.Errorf("%w: extra alias %q targets %q", types.ErrInvalidRegistry, alias, id)
		}
		staged.extra[alias] = id
	}

	r.defs, r.names, r.extra = staged.defs, staged.names, staged.extra
	r.logger.Debug("registry loaded",
		"properties", len(f.Properties),
		"extra_aliases", len(f.ExtraAliases),
		"total", len(r.defs))
	return nil
}

// LoadFile loads a registry file from path.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening registry file: %w", err)
	}
	defer f.Close()
	if err := r.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// cloneLocked copies the lookup tables. The caller holds r.mu.
func (r *Registry) cloneLocked() *Registry {
	c := &Registry{
		defs:   make(map[string]types.PropertyDefinition, len(r.defs)),
		names:  make(map[string]string, len(r.names)),
		extra:  make(map[string]string, len(r.extra)),
		logger: r.logger,
	}
	for k, v := range r.defs {
		c.defs[k] = v
	}
	for k, v := range r.names {
		c.names[k] = v
	}
	for k, v := range r.extra {
		c.extra[k] = v
	}
	return c
}
