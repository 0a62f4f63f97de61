package semprops

import (
	"strings"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// Normalizer canonicalizes property strings.
type Normalizer struct {
	ns types.NamespaceService
}

// NewNormalizer returns a Normalizer using ns for prefix and case rules.
// A nil ns disables prefix stripping and capitalization.
func NewNormalizer(ns types.NamespaceService) *Normalizer {
	return &Normalizer{ns: ns}
}

// Normalize trims raw, strips a property namespace prefix, and returns the
// name in canonical form. Names starting with an underscore are IDs and come
// back in DbKey form; other names come back in title form with the first
// letter uppercased when the property namespace is case-insensitive.
// Whitespace-only input yields "".
func (n *Normalizer) Normalize(raw string) string {
	name, _ := n.normalize(raw)
	return name
}

// normalize returns the canonical name of raw and, for property names, the
// same name before its first letter was uppercased. The two are equal for
// IDs and when the namespace is case-sensitive.
func (n *Normalizer) normalize(raw string) (name, uncapitalized string) {
	name = n.stripNamespace(strings.TrimSpace(raw))
	if name == "" {
		return "", ""
	}
	if strings.HasPrefix(name, types.PredefinedPrefix) {
		name = types.DBKey(name)
		return name, name
	}
	name = strings.TrimSpace(types.TitleText(name))
	uncapitalized = name
	if n.ns != nil && n.ns.IsPropertyNamespaceCaseInsensitive() {
		name = n.ns.UcFirst(name)
	}
	return name, uncapitalized
}

// stripNamespace removes leading property namespace prefixes. Repeated
// prefixes are all removed so that Normalize stays idempotent.
func (n *Normalizer) stripNamespace(name string) string {
	if n.ns == nil {
		return name
	}
	for {
		prefix, rest, ok := strings.Cut(name, ":")
		if !ok {
			return name
		}
		if !n.ns.PrefixMatchesPropertyNamespace(types.DBKey(prefix)) {
			// Other name with a ':'
			return name
		}
		name = strings.TrimSpace(rest)
	}
}
