// Package envschema validates flat key/value environments against an ordered list of
// field descriptors.
//
// A Schema is data: each Field names a key, its Kind, whether it is required and an
// optional default. Parse applies every descriptor in one pass and either returns the
// fully coerced Values or a *ValidationError listing every violated field.
package envschema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the primitive shape a raw value must be coerced to.
type Kind string

const (
	KindString   Kind = "string"
	KindEnum     Kind = "enum"
	KindInteger  Kind = "integer"
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindDateTime Kind = "datetime"
	KindURL      Kind = "url"
)

func (k Kind) valid() bool {
	switch k {
	case KindString, KindEnum, KindInteger, KindDate, KindTime, KindDateTime, KindURL:
		return true
	default:
		return false
	}
}

// Field describes a single configuration key.
type Field struct {
	Key        string
	Kind       Kind
	Required   bool
	Default    string
	HasDefault bool
	Allowed    []string
}

func String(key string) Field   { return Field{Key: key, Kind: KindString, Required: true} }
func Integer(key string) Field  { return Field{Key: key, Kind: KindInteger, Required: true} }
func Date(key string) Field     { return Field{Key: key, Kind: KindDate, Required: true} }
func Time(key string) Field     { return Field{Key: key, Kind: KindTime, Required: true} }
func DateTime(key string) Field { return Field{Key: key, Kind: KindDateTime, Required: true} }
func URL(key string) Field      { return Field{Key: key, Kind: KindURL, Required: true} }

// Enum declares a field whose value must exactly match one of allowed.
func Enum(key string, allowed ...string) Field {
	return Field{
		Key:      key,
		Kind:     KindEnum,
		Required: true,
		Allowed:  append([]string(nil), allowed...),
	}
}

// Optional marks the field as allowed to be absent. Absent optional fields without a
// default are simply not set in the resulting Values.
func (f Field) Optional() Field {
	f.Required = false
	return f
}

// WithDefault substitutes value when the key is absent. A field with a default is
// implicitly optional.
func (f Field) WithDefault(value string) Field {
	f.Default = value
	f.HasDefault = true
	f.Required = false
	return f
}

// Schema is an immutable, ordered set of field descriptors.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// New builds a schema, rejecting duplicate or empty keys, enum fields without allowed
// values, unknown kinds and defaults that would not themselves validate.
func New(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   strings.TrimSpace(name),
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	var problems []string
	for _, f := range fields {
		f.Key = strings.TrimSpace(f.Key)
		f.Allowed = append([]string(nil), f.Allowed...)

		switch {
		case f.Key == "":
			problems = append(problems, "field with empty key")
			continue
		case !f.Kind.valid():
			problems = append(problems, fmt.Sprintf("%s: unknown kind %q", f.Key, f.Kind))
			continue
		case f.Kind == KindEnum && len(f.Allowed) == 0:
			problems = append(problems, fmt.Sprintf("%s: enum without allowed values", f.Key))
			continue
		}
		if _, dup := s.index[f.Key]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate key", f.Key))
			continue
		}
		if f.HasDefault {
			if _, msg, ok := coerce(f, f.Default); !ok {
				problems = append(problems, fmt.Sprintf("%s: invalid default: %s", f.Key, msg))
				continue
			}
		}

		s.index[f.Key] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	if len(problems) > 0 {
		return nil, errors.New("envschema: invalid schema " + s.name + ": " + strings.Join(problems, "; "))
	}
	return s, nil
}

// MustNew is New for package-level schema declarations.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Fields returns a copy of the descriptors in declaration order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		f.Allowed = append([]string(nil), f.Allowed...)
		out[i] = f
	}
	return out
}

func (s *Schema) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Key
	}
	return out
}

func (s *Schema) Lookup(key string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return Field{}, false
	}
	f := s.fields[i]
	f.Allowed = append([]string(nil), f.Allowed...)
	return f, true
}
