// Package table is the in-memory record model shared by loaders and the
// profiler.
package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyInput indicates a nil or zero-length table.
	ErrEmptyInput = errors.New("table has no records")
	// ErrMalformedInput indicates input that is not a sequence of records.
	ErrMalformedInput = errors.New("input is not a sequence of records")
)

// Record is one row: an ordered set of keys with their raw values.
// Values are string, float64, int64, json.Number, bool or nil.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord builds a record from parallel key/value slices. Later duplicates
// of a key overwrite the value but keep the first position.
func NewRecord(keys []string, values []any) Record {
	r := Record{values: make(map[string]any, len(keys))}
	for i, k := range keys {
		var v any
		if i < len(values) {
			v = values[i]
		}
		r.Set(k, v)
	}
	return r
}

// Set assigns a value, appending the key if it is new.
func (r *Record) Set(key string, v any) {
	if r.values == nil {
		r.values = map[string]any{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the raw value and whether the key is present.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the record's keys in insertion order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len is the number of keys.
func (r Record) Len() int { return len(r.keys) }

// Canonical serializes the full record with a stable (sorted) key order.
// Numbers are compared by value, so 1, 1.0 and int64(1) serialize alike.
func (r Record) Canonical() string {
	norm := make(map[string]any, len(r.values))
	for k, v := range r.values {
		norm[k] = numberValue(v)
	}
	b, err := json.Marshal(norm)
	if err != nil {
		// values come from loaders and are always marshalable; fall back to fmt
		return fmt.Sprint(norm)
	}
	return string(b)
}

// numberValue converts any numeric representation to float64. Other values
// and unparseable json.Number literals are returned unchanged.
func numberValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	}
	return v
}

// MarshalJSON writes the record as a JSON object in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range r.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// MarshalYAML writes the record as a mapping in key order.
func (r Record) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.keys {
		var v yaml.Node
		switch x := r.values[k].(type) {
		case json.Number:
			v = yaml.Node{Kind: yaml.ScalarNode, Value: x.String()}
		default:
			if err := v.Encode(x); err != nil {
				return nil, fmt.Errorf("marshal %q: %w", k, err)
			}
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &v)
	}
	return n, nil
}

// Table is an ordered, read-only sequence of records.
type Table []Record

// Columns returns the key set of the first record.
func (t Table) Columns() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0].Keys()
}

// Values returns one column's raw values, one per row. Absent keys yield nil.
func (t Table) Values(column string) []any {
	out := make([]any, len(t))
	for i, r := range t {
		out[i], _ = r.Get(column)
	}
	return out
}

// IsMissing reports whether a raw cell counts as missing: nil or "".
// Absent keys are read as nil.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	}
	return false
}

// String casts a raw value to its display string.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// Key identifies a raw value by kind and content, so 1 and "1" are distinct.
func Key(v any) string {
	switch v.(type) {
	case string, []byte:
		return "s:" + String(v)
	case bool:
		return "b:" + String(v)
	case nil:
		return "z:"
	default:
		return "n:" + String(numberValue(v))
	}
}

// FromMaps converts decoded JSON-like input into a Table. Each element must
// be a map; keys are taken in sorted order because Go maps carry none. Use
// parser.DecodeJSON when source key order matters.
func FromMaps(in any) (Table, error) {
	if in == nil {
		return nil, nil
	}
	rows, ok := in.([]any)
	if !ok {
		if ms, ok := in.([]map[string]any); ok {
			rows = make([]any, len(ms))
			for i := range ms {
				rows[i] = ms[i]
			}
		} else {
			return nil, fmt.Errorf("%w: got %T", ErrMalformedInput, in)
		}
	}
	out := make(Table, 0, len(rows))
	for i, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrMalformedInput, i, row)
		}
		keys := sortedKeys(m)
		vals := make([]any, len(keys))
		for j, k := range keys {
			vals[j] = m[k]
		}
		out = append(out, NewRecord(keys, vals))
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
