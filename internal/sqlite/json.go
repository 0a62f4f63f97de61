package sqlite

// JSONL record layouts. Values are stored as types.Statement.

// propertyRecord is a line of properties.jsonl.
type propertyRecord struct {
	PropertyID  string `json:"property_id"`
	Label       string `json:"label,omitempty"`
	TypeID      string `json:"type_id,omitempty"`
	Description string `json:"description,omitempty"`
	UpdatedAt   string `json:"updated_at"`
}

// subobjectRecord is a line of subobjects.jsonl.
type subobjectRecord struct {
	Subject     string `json:"subject"`
	Page        string `json:"page"`
	SubobjectID string `json:"subobject_id"`
	CreatedAt   string `json:"created_at"`
}
