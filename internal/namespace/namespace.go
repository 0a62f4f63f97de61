// Package namespace implements the property-namespace rules the normalizer
// depends on: which page prefixes name the property namespace, and how the
// first letter of a property name is capitalized.
package namespace

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// DefaultCanonical is the canonical name of the property namespace.
const DefaultCanonical = "Property"

// Options describes the host's property namespace.
type Options struct {
	// Canonical is the untranslated namespace name. Empty means
	// DefaultCanonical.
	Canonical string
	// Aliases are localized or alternative namespace names.
	Aliases []string
	// Language is the BCP 47 content-language tag used for case mapping.
	// Empty means English.
	Language string
	// CapitalLinks makes the first letter of property names
	// case-insensitive, stored uppercased.
	CapitalLinks bool
}

// Service implements types.NamespaceService. It is immutable and safe for
// concurrent use.
type Service struct {
	prefixes map[string]struct{}
	tag      language.Tag
	capital  bool
}

var _ types.NamespaceService = (*Service)(nil)

// New returns a Service for opts. An unparseable language tag is an error.
func New(opts Options) (*Service, error) {
	tag := language.English
	if opts.Language != "" {
		t, err := language.Parse(opts.Language)
		if err != nil {
			return nil, fmt.Errorf("content language %q: %w", opts.Language, err)
		}
		tag = t
	}

	canonical := opts.Canonical
	if strings.TrimSpace(canonical) == "" {
		canonical = DefaultCanonical
	}
	s := &Service{
		prefixes: make(map[string]struct{}, len(opts.Aliases)+1),
		tag:      tag,
		capital:  opts.CapitalLinks,
	}
	for _, p := range append([]string{canonical}, opts.Aliases...) {
		if k := foldPrefix(p); k != "" {
			s.prefixes[k] = struct{}{}
		}
	}
	return s, nil
}

// PrefixMatchesPropertyNamespace reports whether prefix names the property
// namespace. Case, and spaces versus underscores, are ignored.
func (s *Service) PrefixMatchesPropertyNamespace(prefix string) bool {
	k := foldPrefix(prefix)
	if k == "" {
		return false
	}
	_, ok := s.prefixes[k]
	return ok
}

func (s *Service) IsPropertyNamespaceCaseInsensitive() bool {
	return s.capital
}

// UcFirst uppercases the first letter of str with the content language's
// case rules, e.g. "i" becomes "İ" for Turkish.
func (s *Service) UcFirst(str string) string {
	r, size := utf8.DecodeRuneInString(str)
	if r == utf8.RuneError {
		return str
	}
	// Casers are stateful, so each call gets its own.
	return cases.Upper(s.tag).String(string(r)) + str[size:]
}

// Language returns the content language.
func (s *Service) Language() language.Tag {
	return s.tag
}

func foldPrefix(p string) string {
	return cases.Fold().String(types.DBKey(strings.TrimSpace(p)))
}
