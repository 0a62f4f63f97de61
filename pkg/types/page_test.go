package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNames(t *testing.T) {
	tests := []struct {
		name     string
		page     Page
		prefixed string
		dbKey    string
	}{
		{"main namespace", Page{Title: "Page A"}, "Page A", "Page_A"},
		{"underscored title", Page{Title: "Page_A"}, "Page A", "Page_A"},
		{"namespaced", Page{Namespace: "Help", Title: "Some page"}, "Help:Some page", "Help:Some_page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.prefixed, tt.page.PrefixedText())
			assert.Equal(t, tt.dbKey, tt.page.DBKey())
		})
	}
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, Page{Namespace: "Help", Title: "Some page"}, ParsePage("Help:Some_page", "Help"))
	assert.Equal(t, Page{Title: "Foo:Bar"}, ParsePage("Foo:Bar", "Help"))
	assert.Equal(t, Page{Title: "Plain page"}, ParsePage("  Plain_page "))
	assert.True(t, ParsePage("  ").IsZero())
}

func TestSubjectString(t *testing.T) {
	p := Page{Title: "Page A"}
	assert.Equal(t, "Page_A", Subject{Page: p}.String())
	assert.Equal(t, "Page_A#_abc", Subject{Page: p, Subobject: "_abc"}.String())

	so := Subobject{Page: p, ID: "named_one"}
	assert.Equal(t, Subject{Page: p, Subobject: "named_one"}, so.Subject())
}
