// Package persist lets an open set of behaviour types be saved to and rebuilt
// from self-describing records.
//
// A Record is a type tag plus a flat map of primitive field values. A Registry
// maps tags to factories; the loader never needs to know the concrete types.
package persist

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Record is a tagged snapshot of one behaviour's configuration.
type Record struct {
	Tag    string         `yaml:"tag" json:"tag" jsonschema:"minLength=1"`
	Fields map[string]any `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// NewRecord creates an empty record for tag.
func NewRecord(tag string) Record {
	return Record{Tag: tag, Fields: make(map[string]any)}
}

// Set stores a primitive field value and returns the record for chaining.
// Values must be bool, string, or a numeric type.
func (r Record) Set(name string, value any) Record {
	switch value.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
	default:
		panic(fmt.Sprintf("persist: field %q has non-primitive type %T", name, value))
	}
	if r.Fields == nil {
		panic("persist: Set on a record without fields, use NewRecord")
	}
	r.Fields[name] = value
	return r
}

// Names returns the field names in sorted order.
func (r Record) Names() []string {
	return slices.Sorted(maps.Keys(r.Fields))
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	return Record{Tag: r.Tag, Fields: maps.Clone(r.Fields)}
}

// Reader decodes typed fields from a record and remembers the first failure,
// so a factory can read every field and check Err once.
type Reader struct {
	rec Record
	err error
}

// NewReader creates a Reader over rec.
func NewReader(rec Record) *Reader {
	return &Reader{rec: rec}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) fail(field, reason string) {
	if r.err == nil {
		r.err = &MalformedRecordError{Tag: r.rec.Tag, Field: field, Reason: reason}
	}
}

func (r *Reader) lookup(name string) (any, bool) {
	v, ok := r.rec.Fields[name]
	if !ok {
		r.fail(name, "is missing")
		return nil, false
	}
	return v, true
}

// Float reads a numeric field as float64.
func (r *Reader) Float(name string) float64 {
	v, ok := r.lookup(name)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	}
	r.fail(name, fmt.Sprintf("has type %T, want number", v))
	return 0
}

// Uint reads a non-negative integral field as uint64. Integral floats are
// accepted because some encoders do not distinguish the two.
func (r *Reader) Uint(name string) uint64 {
	v, ok := r.lookup(name)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case uint64:
		return n
	case uint:
		return uint64(n)
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case int, int8, int16, int32, int64:
		i := toInt64(n)
		if i < 0 {
			r.fail(name, fmt.Sprintf("is negative (%d)", i))
			return 0
		}
		return uint64(i)
	case float32, float64:
		f := r.Float(name)
		if f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 {
			r.fail(name, fmt.Sprintf("is not a non-negative integer (%v)", f))
			return 0
		}
		return uint64(f)
	}
	r.fail(name, fmt.Sprintf("has type %T, want integer", v))
	return 0
}

// String reads a string field.
func (r *Reader) String(name string) string {
	v, ok := r.lookup(name)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(name, fmt.Sprintf("has type %T, want string", v))
	}
	return s
}

// Bool reads a boolean field.
func (r *Reader) Bool(name string) bool {
	v, ok := r.lookup(name)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(name, fmt.Sprintf("has type %T, want bool", v))
	}
	return b
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	}
	return 0
}
