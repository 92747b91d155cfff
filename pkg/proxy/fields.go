package proxy

import (
	"encoding/json"
	"errors"
)

// Fields is a decoded JSON object body, kept raw so each handler can tell a
// missing field from one of the wrong type.
type Fields map[string]json.RawMessage

// FieldState describes a looked-up field.
type FieldState int

const (
	// FieldMissing means the key is absent or null.
	FieldMissing FieldState = iota
	// FieldWrongType means the key holds a non-string value.
	FieldWrongType
	// FieldPresent means the key holds a string, possibly empty.
	FieldPresent
)

var errNotObject = errors.New("body is not a JSON object")

// DecodeFields parses body as a JSON object. Arrays, scalars, null and
// malformed input are errors.
func DecodeFields(body []byte) (Fields, error) {
	var fields Fields
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errNotObject
	}
	return fields, nil
}

// String looks up a string field.
func (f Fields) String(name string) (string, FieldState) {
	raw, ok := f[name]
	if !ok || string(raw) == "null" {
		return "", FieldMissing
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", FieldWrongType
	}
	return s, FieldPresent
}
