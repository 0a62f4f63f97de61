// Package registry holds the predefined properties of the semantic store and
// answers label, alias, and ID lookups for the resolver.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// Registry implements types.PropertyRegistry. Lookups take a read lock, so
// a Registry may be extended while it is being used.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]types.PropertyDefinition // id -> definition
	names  map[string]string                   // label or alias -> id
	extra  map[string]string                   // extra alias -> id
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		defs:   make(map[string]types.PropertyDefinition),
		names:  make(map[string]string),
		extra:  make(map[string]string),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PropertyOption sets a field of a definition passed to Register.
type PropertyOption func(*types.PropertyDefinition)

func WithLabel(label string) PropertyOption {
	return func(d *types.PropertyDefinition) {
		d.Label = label
	}
}

func WithAliases(aliases ...string) PropertyOption {
	return func(d *types.PropertyDefinition) {
		d.Aliases = append(d.Aliases, aliases...)
	}
}

func WithType(typeID string) PropertyOption {
	return func(d *types.PropertyDefinition) {
		d.TypeID = typeID
	}
}

func WithDescription(desc string) PropertyOption {
	return func(d *types.PropertyDefinition) {
		d.Description = desc
	}
}

// Register adds or replaces the predefined property id.
func (r *Registry) Register(id string, opts ...PropertyOption) error {
	def := types.PropertyDefinition{ID: id}
	for _, opt := range opts {
		opt(&def)
	}
	return r.Add(def)
}

// Add adds or replaces a definition. A label or alias already naming a
// different property fails with types.ErrAliasConflict and leaves the
// registry unchanged.
func (r *Registry) Add(def types.PropertyDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(def)
}

func (r *Registry) addLocked(def types.PropertyDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	def.Label = normalizeLabel(def.Label)
	aliases := make([]string, 0, len(def.Aliases))
	for _, a := range def.Aliases {
		if a = normalizeLabel(a); a != "" {
			aliases = append(aliases, a)
		}
	}
	def.Aliases = aliases

	for _, name := range defNames(def) {
		if owner, ok := r.names[name]; ok && owner != def.ID {
			return fmt.Errorf("%w: %q is %s, not %s", types.ErrAliasConflict, name, owner, def.ID)
		}
	}

	if old, ok := r.defs[def.ID]; ok {
		for _, name := range defNames(old) {
			delete(r.names, name)
		}
	}
	r.defs[def.ID] = def
	for _, name := range defNames(def) {
		r.names[name] = def.ID
	}
	return nil
}

// AddExtraAlias maps alias to a predefined ID. Extra aliases are consulted
// after labels and registry aliases.
func (r *Registry) AddExtraAlias(alias, id string) error {
	alias = normalizeLabel(alias)
	if alias == "" {
		return fmt.Errorf("extra alias for %s: %w", id, types.ErrEmptyProperty)
	}
	if err := (types.PropertyDefinition{ID: id}).Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.extra[alias]; ok && owner != id {
		return fmt.Errorf("%w: extra alias %q is %s, not %s", types.ErrAliasConflict, alias, owner, id)
	}
	r.extra[alias] = id
	return nil
}

func (r *Registry) IsKnownID(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[id]
	return ok
}

func (r *Registry) FindIDByLabelOrAlias(label string) (string, bool) {
	label = normalizeLabel(label)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.names[label]; ok {
		return id, true
	}
	id, ok := r.extra[label]
	return id, ok
}

func (r *Registry) FindLabelByID(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	if !ok || def.Label == "" {
		return "", false
	}
	return def.Label, true
}

// Definition returns the definition of a predefined property.
func (r *Registry) Definition(id string) (types.PropertyDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	return def, ok
}

// Properties returns all definitions sorted by ID.
func (r *Registry) Properties() []types.PropertyDefinition {
	r.mu.RLock()
	out := make([]types.PropertyDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ExtraAliases returns a copy of the extra alias table.
func (r *Registry) ExtraAliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.extra))
	for k, v := range r.extra {
		out[k] = v
	}
	return out
}

// Len returns the number of predefined properties.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// defNames returns the label and aliases a definition answers to.
func defNames(def types.PropertyDefinition) []string {
	names := make([]string, 0, len(def.Aliases)+1)
	if def.Label != "" {
		names = append(names, def.Label)
	}
	return append(names, def.Aliases...)
}

// normalizeLabel puts a label in the form lookups use: NFC, trimmed, with
// spaces instead of underscores.
func normalizeLabel(s string) string {
	return strings.TrimSpace(types.TitleText(norm.NFC.String(s)))
}
