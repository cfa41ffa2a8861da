// Package params models request parameter values as a scalar or a list of scalars.
//
// Callers may hand ids over as strings or numbers, and multi-valued filters as
// lists. All of them collapse to a single string through Normalize, which joins
// list items with a comma. Normalization happens once, right before a template
// or query string is resolved.
package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is a request parameter. The zero Value is null.
type Value struct {
	items []string
	list  bool
	set   bool
}

// Null returns the null Value. Null query parameters are omitted from the query string.
func Null() Value {
	return Value{}
}

// String returns a scalar string Value.
func String(s string) Value {
	return Value{items: []string{s}, set: true}
}

// Int returns a scalar integer Value rendered in base 10.
func Int(i int64) Value {
	return String(strconv.FormatInt(i, 10))
}

// Bool returns a scalar boolean Value rendered as "true" or "false".
func Bool(b bool) Value {
	return String(strconv.FormatBool(b))
}

// Strings returns a list Value.
func Strings(items ...string) Value {
	return Value{items: append([]string(nil), items...), list: true, set: true}
}

// Ints returns a list Value of integers.
func Ints(ids ...int64) Value {
	items := make([]string, len(ids))
	for i, id := range ids {
		items[i] = strconv.FormatInt(id, 10)
	}
	return Value{items: items, list: true, set: true}
}

// OptionalString returns String(s), or Null when s is empty.
func OptionalString(s string) Value {
	if s == "" {
		return Null()
	}
	return String(s)
}

// OptionalInt returns Int(i), or Null when i is zero.
func OptionalInt(i int64) Value {
	if i == 0 {
		return Null()
	}
	return Int(i)
}

// OrNull returns v unless it is empty, in which case it returns Null.
// An empty list or an empty string scalar is considered empty.
func OrNull(v Value) Value {
	if v.IsEmpty() {
		return Null()
	}
	return v
}

// IsNull reports whether v carries no value.
func (v Value) IsNull() bool {
	return !v.set
}

// IsList reports whether v was built from a list.
func (v Value) IsList() bool {
	return v.list
}

// IsEmpty reports whether v is null or normalizes to the empty string.
func (v Value) IsEmpty() bool {
	return v.IsNull() || v.Normalize() == ""
}

// Items returns a copy of the raw items.
func (v Value) Items() []string {
	return append([]string(nil), v.items...)
}

// Normalize renders v as one string, joining list items with a comma.
func (v Value) Normalize() string {
	if len(v.items) == 1 {
		return v.items[0]
	}
	return strings.Join(v.items, ",")
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.IsNull() {
		return "<null>"
	}
	return v.Normalize()
}

// MarshalJSON encodes scalars as strings, lists as string arrays and null as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	if v.list {
		return json.Marshal(v.items)
	}
	return json.Marshal(v.Normalize())
}

// UnmarshalJSON accepts a string, number, boolean, null, or an array of those.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Null()
		return nil
	}
	if data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		items := make([]string, 0, len(raw))
		for _, r := range raw {
			s, err := scalarFromJSON(r)
			if err != nil {
				return err
			}
			items = append(items, s)
		}
		*v = Strings(items...)
		return nil
	}
	s, err := scalarFromJSON(data)
	if err != nil {
		return err
	}
	*v = String(s)
	return nil
}

func scalarFromJSON(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return "", err
	}
	switch t := raw.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("params: unsupported parameter value %s", string(data))
	}
}

// Query is a set of query parameters. Null values are skipped on serialization.
type Query map[string]Value

// Clone returns a shallow copy of q with room for extra entries.
func (q Query) Clone(extra int) Query {
	out := make(Query, len(q)+extra)
	for k, v := range q {
		out[k] = v
	}
	return out
}

// NormalizeAll renders every non-null value in m.
func NormalizeAll(m map[string]Value) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v.IsNull() {
			continue
		}
		out[k] = v.Normalize()
	}
	return out
}
