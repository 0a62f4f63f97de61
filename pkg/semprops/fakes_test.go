package semprops

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// fakeRegistry is a fixed in-memory property registry.
type fakeRegistry struct {
	labels  map[string]string // id -> label ("" when nameless)
	aliases map[string]string // label or alias -> id
}

func newFakeRegistry() *fakeRegistry {
	r := &fakeRegistry{
		labels: map[string]string{
			"_MDAT": "Modification date",
			"_CDAT": "Creation date",
			"_TYPE": "Has type",
			"_SKEY": "",
			"_INST": "",
		},
		aliases: map[string]string{
			"Sort key": "_SKEY",
			"Type":     "_TYPE",
		},
	}
	for id, label := range r.labels {
		if label != "" {
			r.aliases[label] = id
		}
	}
	return r
}

func (r *fakeRegistry) IsKnownID(id string) bool {
	_, ok := r.labels[id]
	return ok
}

func (r *fakeRegistry) FindIDByLabelOrAlias(label string) (string, bool) {
	id, ok := r.aliases[label]
	return id, ok
}

func (r *fakeRegistry) FindLabelByID(id string) (string, bool) {
	label, ok := r.labels[id]
	if !ok || label == "" {
		return "", false
	}
	return label, true
}

func (r *fakeRegistry) knownIDs() []string {
	ids := make([]string, 0, len(r.labels))
	for id := range r.labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// suggestingRegistry adds prefix-based suggestions.
type suggestingRegistry struct {
	*fakeRegistry
}

func (r suggestingRegistry) Suggest(id string, max int) []string {
	var out []string
	for _, known := range r.knownIDs() {
		if len(out) < max && len(id) >= 3 && strings.HasPrefix(known, id[:3]) {
			out = append(out, known)
		}
	}
	return out
}

// fakeNamespace recognizes "Property" and the localized "Attribut".
type fakeNamespace struct {
	caseInsensitive bool
}

func (n fakeNamespace) PrefixMatchesPropertyNamespace(prefix string) bool {
	return strings.EqualFold(prefix, "Property") || strings.EqualFold(prefix, "Attribut")
}

func (n fakeNamespace) IsPropertyNamespaceCaseInsensitive() bool {
	return n.caseInsensitive
}

func (n fakeNamespace) UcFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func newTestResolver() *Resolver {
	return NewResolver(newFakeRegistry(), fakeNamespace{caseInsensitive: true})
}

type storedValue struct {
	subject    types.Subject
	propertyID string
	value      string
}

// fakeContainer records values and fails once failAfter values were stored
// when failAfter is positive.
type fakeContainer struct {
	stored    []storedValue
	failAfter int
}

var errContainerFull = errors.New("container full")

func (c *fakeContainer) AddValue(subject types.Subject, propertyID, value string) error {
	if c.failAfter > 0 && len(c.stored) >= c.failAfter {
		return errContainerFull
	}
	c.stored = append(c.stored, storedValue{subject: subject, propertyID: propertyID, value: value})
	return nil
}
