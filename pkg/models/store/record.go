package store

import (
	"strconv"
	"strings"
)

// Record is a raw JSON object returned by the upstream API. Upstream schemas
// vary per account, so values are traversed with total accessors: a missing
// or malformed field is a normal outcome, never a panic.
type Record map[string]any

// Get resolves a dotted path ("client.firstName") into the record.
// The second return value reports whether the path exists with a non-nil value.
func (r Record) Get(path string) (any, bool) {
	if r == nil {
		return nil, false
	}

	// Flattened rows keep dotted keys literally; prefer an exact match
	// before descending into nested objects.
	if v, ok := r[path]; ok {
		if v == nil {
			return nil, false
		}
		return v, true
	}

	var current any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}

	if current == nil {
		return nil, false
	}
	return current, true
}

// Has reports whether the path resolves to a non-nil value.
func (r Record) Has(path string) bool {
	_, ok := r.Get(path)
	return ok
}

// String returns the value at path rendered as a string, or "" when absent.
// Numeric values render without a trailing ".0" so ids stay readable.
func (r Record) String(path string) string {
	v, ok := r.Get(path)
	if !ok {
		return ""
	}
	return Stringify(v)
}

// Float returns the value at path coerced to a float64. Missing, null and
// non-numeric values coerce to 0 so partial upstream data never aborts a run.
func (r Record) Float(path string) float64 {
	v, ok := r.Get(path)
	if !ok {
		return 0
	}
	f, _ := ToFloat(v)
	return f
}

// Int returns the value at path coerced to an integer id.
// The second return value reports whether a numeric value was found.
func (r Record) Int(path string) (int, bool) {
	v, ok := r.Get(path)
	if !ok {
		return 0, false
	}
	f, ok := ToFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Stringify renders a scalar JSON value for display.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// ToFloat coerces a scalar JSON value to float64.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Flatten copies nested objects into dotted keys ("variant.id") one level
// at a time, leaving scalars in place. Arrays are not descended into.
func (r Record) Flatten() Record {
	out := Record{}
	flattenInto(out, "", map[string]any(r))
	return out
}

func flattenInto(out Record, prefix string, obj map[string]any) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(out, key, nested)
			continue
		}
		out[key] = v
	}
}
