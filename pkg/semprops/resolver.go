package semprops

import (
	"strings"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// Suggester is implemented by registries that can propose known IDs close
// to an unknown one.
type Suggester interface {
	Suggest(id string, max int) []string
}

// maxSuggestions bounds the "did you mean" list in resolution errors.
const maxSuggestions = 3

// Resolver maps property designators to IDs and labels.
type Resolver struct {
	norm     *Normalizer
	registry types.PropertyRegistry
}

// NewResolver returns a Resolver backed by registry and ns.
func NewResolver(registry types.PropertyRegistry, ns types.NamespaceService) *Resolver {
	return &Resolver{norm: NewNormalizer(ns), registry: registry}
}

// Normalizer returns the normalizer the resolver applies to its input.
func (r *Resolver) Normalizer() *Normalizer {
	return r.norm
}

// ResolveID returns the property ID for a label, alias, ID, or page name.
//
// An ID-shaped name (leading underscore) is returned only when the registry
// knows it; unknown IDs yield "" and never fall back to a page name. Other
// names resolve through the registry's labels and aliases, and otherwise
// name a user-defined property whose ID is the name in DbKey form. Blank
// input yields "".
func (r *Resolver) ResolveID(raw string) string {
	return r.idFor(r.norm.normalize(raw))
}

// idFor resolves a normalized name. uncapitalized is the name before
// first-letter capitalization; it is tried when a registry label or alias
// starts with a lowercase letter.
func (r *Resolver) idFor(name, uncapitalized string) string {
	if name == "" {
		return ""
	}
	if types.IsPredefinedID(name) {
		if r.registry != nil && r.registry.IsKnownID(name) {
			return name
		}
		return ""
	}
	if id, ok := r.lookup(name, uncapitalized); ok {
		return id
	}
	return types.DBKey(name)
}

// lookup finds the predefined ID registered for a label or alias, trying
// the capitalized form first.
func (r *Resolver) lookup(name, uncapitalized string) (string, bool) {
	if r.registry == nil {
		return "", false
	}
	if id, ok := r.registry.FindIDByLabelOrAlias(name); ok {
		return id, true
	}
	if uncapitalized != "" && uncapitalized != name {
		return r.registry.FindIDByLabelOrAlias(uncapitalized)
	}
	return "", false
}

// ResolveLabel returns the display name for an ID, label, alias, or page
// name.
//
// For a predefined ID the registry label is returned. When the property has
// no label, the ID itself is returned if fallbackToID is set and the ID is
// known; otherwise "". A label or alias of a predefined property yields that
// property's canonical label. Any other name is a page name and is returned
// normalized.
func (r *Resolver) ResolveLabel(raw string, fallbackToID bool) string {
	name, uncapitalized := r.norm.normalize(raw)
	if name == "" {
		return ""
	}
	if types.IsPredefinedID(name) {
		if r.registry == nil {
			return ""
		}
		if label, ok := r.registry.FindLabelByID(name); ok && label != "" {
			return label
		}
		if fallbackToID && r.registry.IsKnownID(name) {
			return name
		}
		return ""
	}
	if id, ok := r.lookup(name, uncapitalized); ok {
		if label, ok := r.registry.FindLabelByID(id); ok && label != "" {
			return label
		}
	}
	return name
}

// Resolve returns a PropertyRef for raw. Blank input fails with
// ErrEmptyProperty and an unknown predefined ID fails with a
// *types.PropertyNotFoundError; callers pick the severity.
func (r *Resolver) Resolve(raw string) (types.PropertyRef, error) {
	name, uncapitalized := r.norm.normalize(raw)
	if name == "" {
		return types.PropertyRef{}, types.ErrEmptyProperty
	}
	id := r.idFor(name, uncapitalized)
	if id == "" {
		return types.PropertyRef{}, r.notFound(name)
	}
	ref := types.PropertyRef{ID: id}
	if types.IsPredefinedID(id) {
		if label, ok := r.registry.FindLabelByID(id); ok {
			ref.Label = label
		}
	} else {
		ref.Label = strings.TrimSpace(types.TitleText(id))
	}
	return ref, nil
}

// notFound builds the resolution error for a normalized name.
func (r *Resolver) notFound(name string) error {
	err := &types.PropertyNotFoundError{Name: name}
	if s, ok := r.registry.(Suggester); ok {
		err.Suggestions = s.Suggest(name, maxSuggestions)
	}
	return err
}
