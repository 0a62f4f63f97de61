package types

import "strings"

// PredefinedPrefix starts every predefined ("special") property ID. Names
// without it are user-defined properties backed by a page.
const PredefinedPrefix = "_"

// Datatype IDs used by predefined property definitions.
const (
	TypeWikiPage = "_wpg"
	TypeText     = "_txt"
	TypeNumber   = "_num"
	TypeBoolean  = "_boo"
	TypeDate     = "_dat"
	TypeRecord   = "_rec"
)

// PropertyRef is a resolved property reference. ID is either a predefined
// property ID or a user-defined property name in DbKey form (underscores
// instead of spaces). Label is empty when the property has no display label.
type PropertyRef struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// IsPredefined reports whether the reference names a predefined property.
func (r PropertyRef) IsPredefined() bool {
	return IsPredefinedID(r.ID)
}

// DisplayName returns the label when one exists, otherwise the ID.
func (r PropertyRef) DisplayName() string {
	if r.Label != "" {
		return r.Label
	}
	return r.ID
}

// PropertyDefinition describes one predefined property known to a registry.
type PropertyDefinition struct {
	ID          string   `json:"id" yaml:"id"`
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	TypeID      string   `json:"type,omitempty" yaml:"type,omitempty"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Validate checks that the definition has a predefined-shaped ID.
func (d PropertyDefinition) Validate() error {
	if !IsPredefinedID(d.ID) || len(d.ID) < 2 {
		return &InvalidDefinitionError{ID: d.ID, Reason: "id must start with an underscore"}
	}
	if strings.ContainsAny(d.ID, " \t\n") {
		return &InvalidDefinitionError{ID: d.ID, Reason: "id must not contain whitespace"}
	}
	return nil
}

// IsPredefinedID reports whether s is shaped like a predefined property ID.
func IsPredefinedID(s string) bool {
	return strings.HasPrefix(s, PredefinedPrefix)
}

// DBKey converts a title-form name to DbKey form.
func DBKey(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// TitleText converts a DbKey-form name to title form.
func TitleText(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
