package sqlite

// Schema DDL. The JSONL files in the data directory are the source of
// truth; these tables are rebuilt from them on every attach.
const (
	createProperties = `CREATE TABLE properties (
    property_id TEXT PRIMARY KEY,
    label TEXT,
    type_id TEXT,
    description TEXT,
    updated_at TEXT NOT NULL
);`

	createSubobjects = `CREATE TABLE subobjects (
    subject TEXT PRIMARY KEY,
    page TEXT NOT NULL,
    subobject_id TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createPropertyValues = `CREATE TABLE property_values (
    value_id TEXT PRIMARY KEY,
    subject TEXT NOT NULL,
    page TEXT NOT NULL,
    subobject_id TEXT,
    property_id TEXT NOT NULL,
    value TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

const (
	idxValuesSubject  = `CREATE INDEX idx_values_subject ON property_values(subject);`
	idxValuesPage     = `CREATE INDEX idx_values_page ON property_values(page);`
	idxValuesProperty = `CREATE INDEX idx_values_property ON property_values(property_id);`
	idxSubobjectsPage = `CREATE INDEX idx_subobjects_page ON subobjects(page);`
)

var schemaDDL = []string{
	createProperties,
	createSubobjects,
	createPropertyValues,
}

var indexDDL = []string{
	idxValuesSubject,
	idxValuesPage,
	idxValuesProperty,
	idxSubobjectsPage,
}

// JSONL file names in the data directory.
const (
	propertiesJSONL = "properties.jsonl"
	subobjectsJSONL = "subobjects.jsonl"
	valuesJSONL     = "values.jsonl"
)
