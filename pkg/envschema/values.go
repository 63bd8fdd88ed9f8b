package envschema

import "sort"

// Values is the coerced result of a successful Parse. It is never mutated after
// creation; accessors hand out copies.
type Values struct {
	schema string
	values map[string]any
}

func (v Values) Schema() string { return v.schema }

// Has reports whether key was set, either from raw input or from its default.
func (v Values) Has(key string) bool {
	_, ok := v.values[key]
	return ok
}

// String returns the value for string-shaped kinds (string, enum, date, time,
// datetime, url).
func (v Values) String(key string) (string, bool) {
	s, ok := v.values[key].(string)
	return s, ok
}

// StringOr returns the value for key or fallback when it is unset.
func (v Values) StringOr(key, fallback string) string {
	if s, ok := v.String(key); ok {
		return s
	}
	return fallback
}

func (v Values) Int(key string) (int, bool) {
	n, ok := v.values[key].(int)
	return n, ok
}

func (v Values) IntOr(key string, fallback int) int {
	if n, ok := v.Int(key); ok {
		return n
	}
	return fallback
}

// Keys returns the set keys in lexical order.
func (v Values) Keys() []string {
	out := make([]string, 0, len(v.values))
	for k := range v.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (v Values) Len() int { return len(v.values) }

// Map returns a copy of the coerced values.
func (v Values) Map() map[string]any {
	out := make(map[string]any, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}
