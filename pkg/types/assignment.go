package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// AssignmentEntry holds the encoded values assigned to one property.
// Property is the normalized designator as the user wrote it; PropertyID is
// its resolution and is empty when an ID-shaped designator is unknown.
type AssignmentEntry struct {
	PropertyID string   `json:"property_id" msgpack:"property_id"`
	Property   string   `json:"property" msgpack:"property"`
	Values     []string `json:"values" msgpack:"values"`
}

// Assignments is an ordered list of entries, grouped by property in
// first-seen order.
type Assignments []AssignmentEntry

// Len returns the total number of values across all entries.
func (a Assignments) Len() int {
	n := 0
	for _, e := range a {
		n += len(e.Values)
	}
	return n
}

// Lookup returns the entry for a property ID.
func (a Assignments) Lookup(propertyID string) (AssignmentEntry, bool) {
	for _, e := range a {
		if e.PropertyID == propertyID {
			return e, true
		}
	}
	return AssignmentEntry{}, false
}

// KeyedValue is one entry of a user-supplied assignment array. Key is
// normally a property string but may be any type the input produced.
type KeyedValue struct {
	Key   any
	Value any
}

// AssignmentArray is the ordered, heterogeneous user mapping of property to
// value(s).
type AssignmentArray []KeyedValue

// Add appends a string-keyed entry and returns the array for chaining.
func (a AssignmentArray) Add(property string, value any) AssignmentArray {
	return append(a, KeyedValue{Key: property, Value: value})
}

// ParseAssignmentArray decodes JSON into an AssignmentArray, keeping object
// key order. A top-level JSON array produces integer keys, the way a script
// list would. Numbers are decoded as json.Number.
func ParseAssignmentArray(data []byte) (AssignmentArray, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil, fmt.Errorf("%w: expected object or array", ErrInvalidJSON)
	}

	var arr AssignmentArray
	for i := 0; dec.More(); i++ {
		var key any = i
		if delim == '{' {
			kt, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
			key = kt
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		arr = append(arr, KeyedValue{Key: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return arr, nil
}

// ParseValue decodes a single JSON value for use with ValueOf.
func ParseValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return v, nil
}
