package validation

import (
	"reflect"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Record is implemented by live model instances (see model.Model) so nested
// relation values can be validated without a dependency on the model package.
// PresentValues returns only the fields that were assigned; unset fields must
// be omitted so they are not checked against the target schema.
type Record interface {
	PresentValues() map[string]any
}

// checkRelation validates an isOneOf value. Primitive values are foreign keys
// and pass; objects are validated against the target schema.
func (v *Validator) checkRelation(field schema.Field, value any, depth int) bool {
	if !field.IsRelation() {
		return true
	}
	return v.checkRelated(field, value, depth)
}

// checkRelations validates every element of an areManyOf collection.
func (v *Validator) checkRelations(field schema.Field, value any, depth int) bool {
	if !field.IsRelation() {
		return true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if !v.checkRelated(field, rv.Index(i).Interface(), depth) {
			return false
		}
	}
	return true
}

func (v *Validator) checkRelated(field schema.Field, value any, depth int) bool {
	if isPrimitiveKey(value) {
		return true
	}
	nested, ok := recordValues(value)
	if !ok {
		return false
	}
	return v.validateNested(field, nested, depth)
}

// validateNested validates only the target fields present in values.
func (v *Validator) validateNested(field schema.Field, values map[string]any, depth int) bool {
	if depth+1 > v.maxDepth {
		log.Warnf("field %s: relation depth %d exceeds limit %d", field.Name, depth+1, v.maxDepth)
		return false
	}
	if v.resolver == nil {
		log.Errorf("field %s: no schema resolver configured for relation %s", field.Name, field.Relation.Target)
		return false
	}
	target, ok := v.resolver.Schema(field.Relation.Target)
	if !ok {
		log.Errorf("field %s: unknown relation target %s", field.Name, field.Relation.Target)
		return false
	}

	var subset []schema.Field
	for _, candidate := range target.Fields() {
		if _, present := values[candidate.Name]; present {
			subset = append(subset, candidate)
		}
	}
	return v.validate(values, subset, depth+1) == nil
}

func recordValues(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case Record:
		if v == nil {
			return nil, false
		}
		return v.PresentValues(), true
	case map[string]any:
		return v, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
