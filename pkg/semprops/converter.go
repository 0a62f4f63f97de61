package semprops

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// subobjectNamespace seeds content-hash subobject IDs.
var subobjectNamespace = uuid.MustParse("3b0e4f57-8a52-4c8e-a1d6-5f0c2e9b7d41")

// Converter checks and converts user input for one caller on one page.
// Failures come back as *types.CallerError warnings prefixed with the
// caller name.
type Converter struct {
	caller   string
	page     types.Page
	resolver *Resolver
	builder  *Builder
	encoder  *Encoder
	logger   *slog.Logger
}

// NewConverter returns a Converter for caller on page. The caller name should
// be the operation name the end user invoked; it overrides WithCaller.
func NewConverter(caller string, page types.Page, resolver *Resolver, opts ...Option) *Converter {
	s := newSettings(opts)
	return &Converter{
		caller:   caller,
		page:     page,
		resolver: resolver,
		builder:  NewBuilder(resolver, WithCaller(caller), WithLogger(s.logger)),
		encoder:  NewEncoder(),
		logger:   s.logger,
	}
}

// Page returns the page the converter is bound to.
func (c *Converter) Page() types.Page {
	return c.page
}

func (c *Converter) warn(err error) error {
	return types.NewCallerError(c.caller, types.SeverityWarning, err)
}

// MakeProperty resolves a property label, ID, or page name.
func (c *Converter) MakeProperty(raw string) (types.PropertyRef, error) {
	ref, err := c.resolver.Resolve(raw)
	if err != nil {
		c.logger.Warn("property not resolved",
			"caller", c.caller,
			"property", raw,
			"error", err)
		return types.PropertyRef{}, c.warn(err)
	}
	return ref, nil
}

// MakeValueString encodes a scalar, null, or record value.
func (c *Converter) MakeValueString(v any) (string, error) {
	s, err := c.encoder.EncodeAny(v)
	if err != nil {
		return "", c.warn(err)
	}
	return s, nil
}

// MakeScalarString encodes a value where records are not allowed.
func (c *Converter) MakeScalarString(v any) (string, error) {
	s, err := c.encoder.EncodeScalarAny(v)
	if err != nil {
		return "", c.warn(err)
	}
	return s, nil
}

// ValueAssignments builds assignments from arr. When linkbackProperty is
// not blank, the full name of the page is added as its value.
func (c *Converter) ValueAssignments(arr types.AssignmentArray, linkbackProperty string) (types.Assignments, error) {
	return c.builder.Build(arr, linkbackProperty, c.page.PrefixedText())
}

// MakeSubobject checks assignments and returns the subobject holding them.
// A blank id is replaced by a hash of the assignments, so the same content
// always gets the same ID; otherwise spaces in id become underscores. Every
// property must resolve.
func (c *Converter) MakeSubobject(assignments types.Assignments, id string) (types.Subobject, error) {
	resolved := make(types.Assignments, 0, len(assignments))
	for _, e := range assignments {
		pid, err := c.entryID(e)
		if err != nil {
			return types.Subobject{}, err
		}
		values := make([]string, len(e.Values))
		copy(values, e.Values)
		resolved = append(resolved, types.AssignmentEntry{PropertyID: pid, Property: e.Property, Values: values})
	}

	id = strings.TrimSpace(id)
	if id != "" {
		id = strings.ReplaceAll(id, " ", "_")
	} else {
		id = HashID(resolved)
	}
	return types.Subobject{Page: c.page, ID: id, Assignments: resolved}, nil
}

// entryID returns the property ID of an assignment entry, re-checking
// predefined IDs against the registry.
func (c *Converter) entryID(e types.AssignmentEntry) (string, error) {
	if e.PropertyID == "" || (types.IsPredefinedID(e.PropertyID) && c.resolver.ResolveID(e.PropertyID) == "") {
		name := e.Property
		if name == "" {
			name = e.PropertyID
		}
		ref, err := c.MakeProperty(name)
		if err != nil {
			return "", err
		}
		return ref.ID, nil
	}
	return e.PropertyID, nil
}

// HashID returns the content-derived subobject ID for assignments: "_"
// followed by 32 hex digits.
func HashID(assignments types.Assignments) string {
	var b strings.Builder
	for _, e := range assignments {
		b.WriteString(e.PropertyID)
		b.WriteByte(0x1d)
		for _, v := range e.Values {
			b.WriteString(v)
			b.WriteByte(0x1f)
		}
		b.WriteByte(0x1e)
	}
	u := uuid.NewSHA1(subobjectNamespace, []byte(b.String()))
	return types.PredefinedPrefix + strings.ReplaceAll(u.String(), "-", "")
}

// IsWarning reports whether err is a converter warning rather than a fatal
// error.
func IsWarning(err error) bool {
	var ce *types.CallerError
	return errors.As(err, &ce) && ce.Severity == types.SeverityWarning
}
