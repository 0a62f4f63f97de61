package types

// PropertyRegistry answers questions about predefined properties. Lookups
// take normalized input: IDs in DbKey form, labels in title form.
// Implementations must be safe for concurrent reads.
type PropertyRegistry interface {
	// IsKnownID reports whether id is a known predefined property ID.
	IsKnownID(id string) bool

	// FindIDByLabelOrAlias returns the predefined property ID for a label,
	// registry alias, or extra alias.
	FindIDByLabelOrAlias(label string) (string, bool)

	// FindLabelByID returns the display label of a predefined property.
	// Properties without a label report false.
	FindLabelByID(id string) (string, bool)
}

// NamespaceService exposes the host's property-namespace settings.
type NamespaceService interface {
	// PrefixMatchesPropertyNamespace reports whether prefix (spaces already
	// replaced by underscores) names the property namespace, canonically or
	// in the content language. The comparison is case-insensitive.
	PrefixMatchesPropertyNamespace(prefix string) bool

	// IsPropertyNamespaceCaseInsensitive reports whether the first letter of
	// property page names is case-insensitive (capitalized).
	IsPropertyNamespaceCaseInsensitive() bool

	// UcFirst uppercases the first character using the content language.
	UcFirst(s string) string
}

// DataContainer accepts resolved property values for persistence.
type DataContainer interface {
	AddValue(subject Subject, propertyID, value string) error
}

// Store is a DataContainer with a lifecycle and read access to what it
// holds. Operations other than Attach fail with ErrDetached until Attach
// succeeds.
type Store interface {
	DataContainer

	// Attach opens the store described by config.
	Attach(config Config) error
	// Detach releases the store. It is idempotent.
	Detach() error

	// AddSubobject replaces the stored values of a subobject.
	AddSubobject(so Subobject) error
	// Values returns the values of subject in insertion order.
	Values(subject Subject) ([]Statement, error)
	// Subjects returns the subjects of page that have stored data.
	Subjects(page Page) ([]Subject, error)
	// DeleteSubject removes a subject's values and returns how many there
	// were.
	DeleteSubject(subject Subject) (int, error)
}
