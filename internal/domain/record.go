package domain

import (
	"fmt"
	"sort"
)

// Record is a structured key-value object decoded from a model response.
// Accessors never fail: a missing key or a value of the wrong type yields
// the caller-supplied default.
type Record map[string]any

// scalarString renders a decoded JSON scalar as text. Numbers and booleans
// are formatted; objects, lists and null are rejected.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64, bool:
		return fmt.Sprint(s), true
	default:
		return "", false
	}
}

// String returns the scalar value at key as text, or def.
func (r Record) String(key, def string) string {
	if s, ok := scalarString(r[key]); ok {
		return s
	}
	return def
}

// Bool returns the boolean value at key, or false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Strings returns the list at key as text. Scalars are converted as in
// String; nested objects, lists and nulls are skipped.
// A missing key or non-list value yields an empty, non-nil slice.
func (r Record) Strings(key string) []string {
	items, ok := r[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := scalarString(it); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringMap returns the object at key as a map of strings.
// Scalars are converted as in String and other values are skipped; a
// missing key yields an empty, non-nil map.
func (r Record) StringMap(key string) map[string]string {
	obj, ok := r[key].(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, ok := scalarString(v); ok {
			out[k] = s
		}
	}
	return out
}

// Keys returns the record's keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
