package model

import (
	"errors"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// ErrUnknownField is returned for names the schema does not declare.
var ErrUnknownField = errors.New("model: unknown field")

// Model is one record instance. The schema is shared; values are owned by
// the instance. A Model is not safe for concurrent mutation.
type Model struct {
	schema    *schema.Schema
	validator *validation.Validator
	values    map[string]any
}

// New binds a record to s. A nil validator is replaced by validation.New().
func New(s *schema.Schema, v *validation.Validator) *Model {
	if v == nil {
		v = validation.New()
	}
	return &Model{
		schema:    s,
		validator: v,
		values:    make(map[string]any),
	}
}

// Schema returns the schema the record is bound to.
func (m *Model) Schema() *schema.Schema {
	return m.schema
}

// SetValues copies every declared field present in partial onto the record.
// Keys the schema does not declare are ignored and fields missing from
// partial keep their current value.
func (m *Model) SetValues(partial map[string]any) {
	for _, name := range m.schema.FieldNames() {
		value, ok := partial[name]
		if !ok {
			continue
		}
		m.values[name] = value
	}
}

// Set assigns a single declared field and reports whether it exists.
func (m *Model) Set(name string, value any) bool {
	if !m.schema.Has(name) {
		return false
	}
	m.values[name] = value
	return true
}

// Get returns the current value of name.
func (m *Model) Get(name string) (any, bool) {
	value, ok := m.values[name]
	return value, ok
}

// GetValues projects the named fields (all declared fields when names is
// empty) into a new map. Fields never assigned are reported as nil.
func (m *Model) GetValues(names ...string) map[string]any {
	if len(names) == 0 {
		names = m.schema.FieldNames()
	}
	out := make(map[string]any, len(names))
	for _, name := range names {
		if !m.schema.Has(name) {
			continue
		}
		out[name] = m.values[name]
	}
	return out
}

// PresentValues returns a copy of the assigned fields only. Nested relation
// validation uses it so unset fields of a partial record are not checked.
func (m *Model) PresentValues() map[string]any {
	out := make(map[string]any, len(m.values))
	for name, value := range m.values {
		out[name] = value
	}
	return out
}

// Validate checks the record against the full field list. When names are
// given only their values are gathered and the result is narrowed to them,
// which suits validating the field a user is currently editing.
func (m *Model) Validate(names ...string) validation.Violation {
	violation := m.validator.Validate(m.GetValues(names...), m.schema.Fields())
	if len(names) == 0 {
		return violation
	}
	return violation.Filter(names...)
}

// ValidateValue checks a candidate value for name without assigning it.
func (m *Model) ValidateValue(name string, value any) validation.Violation {
	return m.validator.Validate(map[string]any{name: value}, m.schema.Fields()).Filter(name)
}

// Check is Validate for callers that prefer an error.
func (m *Model) Check(names ...string) error {
	return m.Validate(names...).Err(m.schema.Name())
}
