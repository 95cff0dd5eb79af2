package parser

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// maxAllOfDepth bounds allOf flattening. Component graphs may be cyclic.
const maxAllOfDepth = 8

func convertComponent(name string, value *openapi3.Schema, order []string) (*schema.Schema, error) {
	properties := make(map[string]*openapi3.SchemaRef)
	required := make(map[string]bool)
	collectProperties(value, properties, required, 0)

	builders := make([]*schema.FieldBuilder, 0, len(properties))
	for _, property := range orderedNames(order, properties) {
		builder, err := convertProperty(property, properties[property], required[property])
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalidSchema, name, property, err)
		}
		builders = append(builders, builder)
	}

	s := schema.New(name)
	if err := s.SetFields(schema.BuildFields(builders...)...); err != nil {
		return nil, fmt.Errorf("openapi parser: %w", err)
	}
	return s, nil
}

// collectProperties merges allOf members first and the schema's own
// properties last, so local declarations win.
func collectProperties(value *openapi3.Schema, dest map[string]*openapi3.SchemaRef, required map[string]bool, depth int) {
	if value == nil || depth > maxAllOfDepth {
		return
	}
	for _, member := range value.AllOf {
		if member != nil {
			collectProperties(member.Value, dest, required, depth+1)
		}
	}
	for name, property := range value.Properties {
		dest[name] = property
	}
	for _, name := range value.Required {
		required[name] = true
	}
}

func convertProperty(name string, ref *openapi3.SchemaRef, required bool) (*schema.FieldBuilder, error) {
	if ref == nil || ref.Value == nil {
		return nil, errors.New("property has no schema")
	}
	value := ref.Value
	ext := formExtension(value.Extensions)

	builder := schema.NewField(name)
	fieldType, relation := classify(ref)

	if raw, ok := ext["type"].(string); ok {
		override, valid := schema.ParseFieldType(raw)
		if !valid {
			return nil, fmt.Errorf("%w %q", schema.ErrInvalidType, raw)
		}
		builder.Type(override)
	} else if relation == nil {
		builder.Type(fieldType)
	}

	label, _ := ext["label"].(string)
	if label == "" {
		label = value.Title
	}
	if label != "" {
		builder.Label(label)
	}
	if required {
		builder.Required()
	}
	if flag, ok := ext["unique"].(bool); ok {
		builder.Unique(flag)
	}
	if flag, ok := ext["primary"].(bool); ok {
		builder.Primary(flag)
	}

	if len(value.Enum) > 0 {
		builder.Enum(value.Enum...)
	}
	if value.Min != nil {
		builder.Min(*value.Min)
	}
	if value.Max != nil {
		builder.Max(*value.Max)
	}
	if value.MinLength > 0 {
		builder.MinLength(int(value.MinLength))
	}
	if value.MaxLength != nil {
		builder.MaxLength(int(*value.MaxLength))
	}
	if value.Pattern != "" {
		re, err := regexp.Compile(value.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		builder.Pattern(re)
	}

	if types := stringList(ext["fileType"]); len(types) > 0 {
		builder.FileType(types...)
	}
	if size, ok := ext["maxSize"]; ok {
		if _, err := schema.ParseSize(size); err != nil {
			return nil, err
		}
		builder.MaxSize(size)
	}
	if value.Default != nil {
		builder.Default(value.Default)
	}

	if override := relationFromExtensions(value.Extensions, relation); override != nil {
		relation = override
	}
	if relation != nil {
		if relation.Many() {
			builder.AreManyOf(relation.Target)
		} else {
			builder.IsOneOf(relation.Target)
		}
	}
	return builder, nil
}

// classify maps an OpenAPI property onto a field type, or onto a relation
// when the property references another object component.
func classify(ref *openapi3.SchemaRef) (schema.FieldType, *schema.Relation) {
	if target := objectTarget(ref); target != "" {
		return schema.FieldTypeRelation, &schema.Relation{Kind: schema.RelationOne, Target: target}
	}
	value := ref.Value
	if len(value.AllOf) == 1 {
		if target := objectTarget(value.AllOf[0]); target != "" {
			return schema.FieldTypeRelation, &schema.Relation{Kind: schema.RelationOne, Target: target}
		}
	}

	format := strings.ToLower(value.Format)
	switch firstSchemaType(value.Type) {
	case openapi3.TypeArray:
		if value.Items != nil {
			target := objectTarget(value.Items)
			if target == "" && value.Items.Value != nil && len(value.Items.Value.AllOf) == 1 {
				target = objectTarget(value.Items.Value.AllOf[0])
			}
			if target != "" {
				return schema.FieldTypeRelation, &schema.Relation{Kind: schema.RelationMany, Target: target}
			}
		}
		return schema.FieldTypeObject, nil
	case openapi3.TypeString:
		switch format {
		case "email":
			return schema.FieldTypeEmail, nil
		case "uri", "url":
			return schema.FieldTypeURL, nil
		case "binary":
			return schema.FieldTypeFile, nil
		case "password":
			return schema.FieldTypePassword, nil
		case "tel", "phone":
			return schema.FieldTypeTel, nil
		case "textarea":
			return schema.FieldTypeText, nil
		}
		return schema.FieldTypeString, nil
	case openapi3.TypeInteger:
		if format == "unix-time" || format == "timestamp" {
			return schema.FieldTypeTimestamp, nil
		}
		return schema.FieldTypeInteger, nil
	case openapi3.TypeNumber:
		if format == "float" || format == "double" {
			return schema.FieldTypeFloat, nil
		}
		return schema.FieldTypeNumber, nil
	case openapi3.TypeBoolean:
		return schema.FieldTypeBoolean, nil
	case openapi3.TypeObject:
		return schema.FieldTypeObject, nil
	}
	if len(value.Properties) > 0 {
		return schema.FieldTypeObject, nil
	}
	return schema.FieldTypeString, nil
}

// objectTarget returns the component name behind a $ref when the referenced
// schema is an object. References to enums or scalars are inlined instead.
func objectTarget(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Ref == "" || !isObject(ref.Value) {
		return ""
	}
	return componentName(ref.Ref)
}

func isObject(value *openapi3.Schema) bool {
	if value == nil {
		return false
	}
	if firstSchemaType(value.Type) == openapi3.TypeObject || len(value.Properties) > 0 {
		return true
	}
	for _, member := range value.AllOf {
		if member != nil && isObject(member.Value) {
			return true
		}
	}
	return false
}

func componentName(ref string) string {
	ref = strings.TrimSpace(ref)
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return ""
}

func formExtension(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	ext, _ := raw[pkgopenapi.ExtensionKey].(map[string]any)
	return ext
}

func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// orderedNames returns the property names in document order followed by
// any names the document walk missed, sorted.
func orderedNames(order []string, properties map[string]*openapi3.SchemaRef) []string {
	names := make([]string, 0, len(properties))
	seen := make(map[string]struct{}, len(properties))
	for _, name := range order {
		if _, ok := properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	var rest []string
	for name := range properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
