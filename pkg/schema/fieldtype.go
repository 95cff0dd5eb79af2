package schema

import "strings"

// FieldType is the closed set of primitive and semantic field kinds. The
// string value doubles as the name of the field's type rule.
type FieldType string

const (
	FieldTypeString    FieldType = "string"
	FieldTypeText      FieldType = "text"
	FieldTypePassword  FieldType = "password"
	FieldTypeTel       FieldType = "tel"
	FieldTypeEmail     FieldType = "email"
	FieldTypeURL       FieldType = "url"
	FieldTypeNumber    FieldType = "number"
	FieldTypeInteger   FieldType = "integer"
	FieldTypeFloat     FieldType = "float"
	FieldTypeFile      FieldType = "file"
	FieldTypeTimestamp FieldType = "timestamp"
	FieldTypeBoolean   FieldType = "boolean"
	FieldTypeObject    FieldType = "object"
	FieldTypeEnum      FieldType = "enum"
	FieldTypeRelation  FieldType = "relation"
)

var fieldTypes = []FieldType{
	FieldTypeString,
	FieldTypeText,
	FieldTypePassword,
	FieldTypeTel,
	FieldTypeEmail,
	FieldTypeURL,
	FieldTypeNumber,
	FieldTypeInteger,
	FieldTypeFloat,
	FieldTypeFile,
	FieldTypeTimestamp,
	FieldTypeBoolean,
	FieldTypeObject,
	FieldTypeEnum,
	FieldTypeRelation,
}

// FieldTypes lists every supported FieldType in declaration order.
func FieldTypes() []FieldType {
	return append([]FieldType(nil), fieldTypes...)
}

// ParseFieldType resolves a case-insensitive type name ("EMail", "URL",
// "integer") into a FieldType.
func ParseFieldType(raw string) (FieldType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, candidate := range fieldTypes {
		if string(candidate) == normalized {
			return candidate, true
		}
	}
	return "", false
}

// Valid reports whether t belongs to the closed FieldType set.
func (t FieldType) Valid() bool {
	_, ok := ParseFieldType(string(t))
	return ok
}

// Rule returns the synthetic type rule derived from t. The zero value maps to
// the string rule.
func (t FieldType) Rule() Rule {
	if t == "" {
		return Rule(FieldTypeString)
	}
	return Rule(t)
}

// Numeric reports whether values of this type are expected to be numbers.
func (t FieldType) Numeric() bool {
	switch t {
	case FieldTypeNumber, FieldTypeInteger, FieldTypeFloat, FieldTypeTimestamp:
		return true
	default:
		return false
	}
}
