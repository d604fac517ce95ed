package shipdesk

import (
	"strconv"
	"strings"
)

// Fields is the result of field extraction: output key to extracted value.
// Values are either string or int. A missing key means the field was not found.
type Fields map[string]any

// String returns the value of key rendered as a string, and whether it was present.
func (f Fields) String(key string) (string, bool) {
	switch v := f[key].(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	}
	return "", false
}

// Int returns the value of key as an integer. String values are parsed as
// numbers and truncated; anything unparseable reports false.
func (f Fields) Int(key string) (int, bool) {
	switch v := f[key].(type) {
	case int:
		return v, true
	case string:
		v = strings.TrimSpace(v)
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			return int(x), true
		}
	}
	return 0, false
}

// FieldExtractor pulls structured ship fields out of free-form document text.
type FieldExtractor interface {
	// Extract never fails; fields that cannot be found are omitted.
	Extract(text string) Fields
}
