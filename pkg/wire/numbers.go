// Package wire translates between the client field convention (nested,
// camelCase) and the backend wire convention (flat, snake_case, with the
// traveler list string-encoded).
//
// Mapping is total in both directions: absent or malformed wire fields
// degrade to safe defaults instead of failing the surrounding read.
package wire

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Float is a float64 that tolerates the backend's loose numeric encoding.
// It decodes JSON numbers, numeric strings, and null; anything else
// degrades to zero rather than erroring.
type Float float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = Float(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = Float(v)
	return nil
}

// MarshalJSON implements json.Marshaler. Values are always emitted as
// JSON numbers.
func (f Float) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// Int is an int with the same tolerant decoding as Float.
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(data []byte) error {
	var f Float
	if err := f.UnmarshalJSON(data); err != nil {
		*i = 0
		return nil
	}
	*i = Int(f)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (i Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(i))
}

// String is a string that also accepts JSON numbers, for id fields the
// backend sometimes emits unquoted.
type String string

// UnmarshalJSON implements json.Unmarshaler.
func (s *String) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			*s = ""
			return nil
		}
		*s = String(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*s = ""
		return nil
	}
	*s = String(n.String())
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}
