// Package jsonschema projects model schemas onto JSON Schema documents so
// clients outside Go can pre-validate records. The projection is best
// effort: rules JSON Schema cannot express (assert, fileType, maxSize) are
// left out and the Validator remains authoritative.
package jsonschema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

const (
	// Dialect is the $schema URI of exported documents.
	Dialect = "https://json-schema.org/draft/2019-09/schema"

	// DefaultDepth bounds how many relation levels are inlined.
	DefaultDepth = 2
)

var ErrNilSchema = errors.New("jsonschema: schema is nil")

// Exporter converts schemas into JSON Schema documents. Relation targets are
// inlined through Resolver up to Depth levels; deeper relations accept any
// key or object. Nested objects carry no required list because related
// records are validated partially.
type Exporter struct {
	Resolver validation.SchemaResolver
	Depth    int
}

// Export converts s using DefaultDepth.
func Export(s *schema.Schema, resolver validation.SchemaResolver) (map[string]any, error) {
	return Exporter{Resolver: resolver, Depth: DefaultDepth}.Export(s)
}

// Export converts s into a JSON Schema document.
func (e Exporter) Export(s *schema.Schema) (map[string]any, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	doc, err := e.object(s, true, 0)
	if err != nil {
		return nil, err
	}
	doc["$schema"] = Dialect
	doc["title"] = s.Name()
	return doc, nil
}

func (e Exporter) object(s *schema.Schema, root bool, depth int) (map[string]any, error) {
	properties := make(map[string]any, len(s.Fields()))
	var required []string

	for _, field := range s.Fields() {
		property, err := e.property(field, depth)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %s.%s: %w", s.Name(), field.Name, err)
		}
		if root && field.Required {
			required = append(required, field.Name)
			requireContent(field, property)
		}
		properties[field.Name] = property
	}

	out := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sort.Strings(required)
		out["required"] = required
	}
	return out, nil
}

func (e Exporter) property(field schema.Field, depth int) (map[string]any, error) {
	if field.IsRelation() {
		return e.relation(field, depth)
	}

	out := make(map[string]any)
	if field.Label != "" {
		out["title"] = field.Label
	}
	if field.Default != nil {
		out["default"] = field.Default
	}

	switch {
	case len(field.Enum) > 0:
		out["enum"] = append([]any(nil), field.Enum...)
	default:
		for key, value := range typeKeywords(field.Type) {
			out[key] = value
		}
	}

	if field.Min != nil {
		out["minimum"] = *field.Min
	}
	if field.Max != nil {
		out["maximum"] = *field.Max
	}
	if field.MinLength != nil {
		out["minLength"] = *field.MinLength
	}
	if field.MaxLength != nil {
		out["maxLength"] = *field.MaxLength
	}
	if field.Pattern != nil {
		pattern := map[string]any{"pattern": `^(?:` + field.Pattern.String() + `)$`}
		if _, taken := out["pattern"]; taken {
			out["allOf"] = []any{pattern}
		} else {
			out["pattern"] = pattern["pattern"]
		}
	}
	return out, nil
}

func (e Exporter) relation(field schema.Field, depth int) (map[string]any, error) {
	target := map[string]any{"type": "object"}
	if e.Resolver != nil && depth < e.Depth {
		s, ok := e.Resolver.Schema(field.Relation.Target)
		if !ok {
			return nil, fmt.Errorf("%w %q", schema.ErrUnknownTarget, field.Relation.Target)
		}
		nested, err := e.object(s, false, depth+1)
		if err != nil {
			return nil, err
		}
		target = nested
	}

	one := map[string]any{
		"anyOf": []any{
			map[string]any{"type": []any{"string", "number"}},
			target,
		},
	}
	if field.Label != "" {
		one["title"] = field.Label
	}
	if !field.Relation.Many() {
		return one, nil
	}

	delete(one, "title")
	many := map[string]any{
		"type":  "array",
		"items": one,
	}
	if field.Label != "" {
		many["title"] = field.Label
	}
	return many, nil
}

// typeKeywords mirrors the type rules. string-like rules accept any value in
// the Validator, so they are exported without a type to stay equivalent.
func typeKeywords(t schema.FieldType) map[string]any {
	switch t {
	case schema.FieldTypeEmail, schema.FieldTypeTel, schema.FieldTypeURL:
		re, _ := validation.TypePattern(t)
		return map[string]any{"type": "string", "pattern": re.String()}
	case schema.FieldTypeInteger, schema.FieldTypeTimestamp:
		return map[string]any{"type": "integer"}
	case schema.FieldTypeNumber, schema.FieldTypeFloat:
		return map[string]any{"type": "number"}
	case schema.FieldTypeBoolean:
		return map[string]any{"type": []any{"boolean", "integer"}, "minimum": 0, "maximum": 1}
	default:
		return nil
	}
}

// requireContent mirrors the required rule, which treats empty strings and
// empty relation collections as absent.
func requireContent(field schema.Field, property map[string]any) {
	if field.Relation.Many() {
		property["minItems"] = 1
		return
	}
	property["not"] = map[string]any{"enum": []any{"", nil}}
}
