package semprops

import (
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// Builder turns user assignment arrays into grouped, encoded assignments.
type Builder struct {
	resolver *Resolver
	encoder  *Encoder
	caller   string
	logger   *slog.Logger
}

// NewBuilder returns a Builder resolving property keys with resolver.
func NewBuilder(resolver *Resolver, opts ...Option) *Builder {
	s := newSettings(opts)
	return &Builder{
		resolver: resolver,
		encoder:  NewEncoder(),
		caller:   s.caller,
		logger:   s.logger,
	}
}

type groupKey struct {
	id   string
	name string
}

// Build encodes arr into assignments grouped by property in first-seen
// order.
//
// Each key must be a string. A list value is a list of independent values,
// and a list nested inside it is a record. Values that encode to "" are
// dropped. When linkbackProperty is not blank, linkbackValue is appended to
// that property's group as given, without encoding. Any error aborts the build and is returned as a
// *types.CallerError; no partial result is returned.
func (b *Builder) Build(arr types.AssignmentArray, linkbackProperty, linkbackValue string) (types.Assignments, error) {
	var (
		out   types.Assignments
		index = make(map[groupKey]int)
	)
	add := func(property, value string) {
		name, uncapitalized := b.resolver.Normalizer().normalize(property)
		id := b.resolver.idFor(name, uncapitalized)
		k := groupKey{id: id}
		if id == "" {
			k.name = name
		}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, types.AssignmentEntry{PropertyID: id, Property: name})
		}
		out[i].Values = append(out[i].Values, value)
	}

	for _, kv := range arr {
		property, ok := kv.Key.(string)
		if !ok {
			return nil, types.NewCallerError(b.caller, types.SeverityWarning, types.ErrNonStringKey)
		}
		values, err := b.encodeEntry(kv.Value)
		if err != nil {
			return nil, types.NewCallerError(b.caller, types.SeverityWarning, err)
		}
		for _, v := range values {
			add(property, v)
		}
	}

	if strings.TrimSpace(linkbackProperty) != "" {
		add(linkbackProperty, linkbackValue)
	}

	b.logger.Debug("built value assignments",
		"caller", b.caller,
		"properties", len(out),
		"values", out.Len())
	return out, nil
}

// encodeEntry encodes the value side of one assignment entry, dropping
// empty results.
func (b *Builder) encodeEntry(v any) ([]string, error) {
	var elems []any
	switch x := v.(type) {
	case []any:
		elems = x
	case []string:
		elems = make([]any, len(x))
		for i, s := range x {
			elems[i] = s
		}
	case []types.Value:
		elems = make([]any, len(x))
		for i, val := range x {
			elems[i] = val
		}
	default:
		elems = []any{v}
	}

	var out []string
	for _, e := range elems {
		s, err := b.encoder.EncodeAny(e)
		if err != nil {
			return nil, err
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
