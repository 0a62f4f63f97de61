package types

import "time"

// Statement is one stored property value: a subject, a property ID, and a
// value string.
type Statement struct {
	ID         string    `json:"value_id" msgpack:"value_id"`
	Subject    string    `json:"subject" msgpack:"subject"`
	Page       string    `json:"page" msgpack:"page"`
	Subobject  string    `json:"subobject,omitempty" msgpack:"subobject,omitempty"`
	PropertyID string    `json:"property_id" msgpack:"property_id"`
	Value      string    `json:"value" msgpack:"value"`
	CreatedAt  time.Time `json:"created_at" msgpack:"created_at"`
}

// NewStatement returns a statement for subject without ID or timestamp.
func NewStatement(subject Subject, propertyID, value string) Statement {
	return Statement{
		Subject:    subject.String(),
		Page:       subject.Page.DBKey(),
		Subobject:  subject.Subobject,
		PropertyID: propertyID,
		Value:      value,
	}
}
