package semprops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(fakeNamespace{caseInsensitive: true})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"label with underscores", "foo_bar", "Foo bar"},
		{"surrounding whitespace", "  foo bar  ", "Foo bar"},
		{"canonical prefix", "Property:foo", "Foo"},
		{"prefix in other case", "PROPERTY:foo", "Foo"},
		{"localized prefix", "Attribut:foo", "Foo"},
		{"space after colon", "Property: foo", "Foo"},
		{"repeated prefix", "Property:Property:foo", "Foo"},
		{"other colon", "Foo:Bar", "Foo:Bar"},
		{"predefined ID", "_MDAT", "_MDAT"},
		{"ID with spaces", "_a b", "_a_b"},
		{"prefixed ID", "Property:_MDAT", "_MDAT"},
		{"lone underscore", "_", "_"},
		{"whitespace only", " \t ", ""},
		{"prefix only", "Property:", ""},
		{"trailing underscore", "foo_", "Foo"},
		{"non-ascii first letter", "\u00e4rger", "\u00c4rger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalizeCaseSensitiveNamespace(t *testing.T) {
	n := NewNormalizer(fakeNamespace{caseInsensitive: false})
	assert.Equal(t, "foo bar", n.Normalize("foo_bar"))
	assert.Equal(t, "foo", n.Normalize("Property:foo"))
}

func TestNormalizeWithoutNamespaceService(t *testing.T) {
	n := NewNormalizer(nil)
	assert.Equal(t, "Property:foo bar", n.Normalize("Property:foo_bar"))
	assert.Equal(t, "_X_Y", n.Normalize(" _X Y "))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", " ", "_", "__", "_ ", " _x_ ", "foo", "foo_", "_foo_", "a__b",
		"Property:", "Property::", "Property: :x", "property:_x y",
		"Foo:Bar:Baz", ":", " : ", "Property_:x", "x:Property:y",
		"Attribut : z", "ßtraße", "ǆemal", "  multiple   spaces  ",
	}
	for _, ci := range []bool{true, false} {
		n := NewNormalizer(fakeNamespace{caseInsensitive: ci})
		for _, in := range inputs {
			once := n.Normalize(in)
			assert.Equal(t, once, n.Normalize(once), "input %q (case-insensitive=%v)", in, ci)
		}
	}
}
