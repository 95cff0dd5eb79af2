package schema

import (
	"fmt"
	"strings"
)

// Schema is the ordered field list of one model.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// New creates an empty schema for modelName.
func New(modelName string) *Schema {
	return &Schema{
		name:  strings.TrimSpace(modelName),
		index: make(map[string]int),
	}
}

// MustNew builds a schema from builders and panics on invalid declarations.
// Intended for package-level schema variables.
func MustNew(modelName string, builders ...*FieldBuilder) *Schema {
	s := New(modelName)
	if err := s.SetFields(BuildFields(builders...)...); err != nil {
		panic(err)
	}
	return s
}

// Name returns the model name.
func (s *Schema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// SetFields replaces the complete field list with fields, in argument order.
// Calling it twice overwrites rather than merges. On error the previous list
// is kept.
func (s *Schema) SetFields(fields ...Field) error {
	if s == nil {
		return ErrModelNameMissing
	}
	next := make([]Field, 0, len(fields))
	index := make(map[string]int, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return &FieldError{Model: s.name, Err: ErrFieldNameMissing}
		}
		if _, exists := index[name]; exists {
			return &FieldError{Model: s.name, Field: name, Err: ErrDuplicateField}
		}
		if field.Type != "" && !field.Type.Valid() {
			return &FieldError{Model: s.name, Field: name, Err: fmt.Errorf("%w %q", ErrInvalidType, field.Type)}
		}
		cloned := field.Clone()
		cloned.Name = name
		if cloned.Type == "" {
			cloned.Type = FieldTypeString
		}
		if cloned.Primary {
			cloned.Type = FieldTypeString
		}
		index[name] = len(next)
		next = append(next, cloned)
	}
	s.fields = next
	s.index = index
	return nil
}

// Field returns a copy of the named field.
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx].Clone(), true
}

// Fields returns copies of all fields in declaration order.
func (s *Schema) Fields() []Field {
	if s == nil || len(s.fields) == 0 {
		return nil
	}
	out := make([]Field, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.Clone()
	}
	return out
}

// FieldNames returns field names in declaration order.
func (s *Schema) FieldNames() []string {
	if s == nil || len(s.fields) == 0 {
		return nil
	}
	names := make([]string, len(s.fields))
	for i, field := range s.fields {
		names[i] = field.Name
	}
	return names
}

// Has reports whether the schema declares name.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// ValidationModel returns the fields keyed by name for O(1) lookups.
func (s *Schema) ValidationModel() map[string]Field {
	if s == nil {
		return nil
	}
	model := make(map[string]Field, len(s.fields))
	for _, field := range s.fields {
		model[field.Name] = field.Clone()
	}
	return model
}

// PrimaryField returns the first field flagged as primary.
func (s *Schema) PrimaryField() (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	for _, field := range s.fields {
		if field.Primary {
			return field.Clone(), true
		}
	}
	return Field{}, false
}
