package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Coerce converts a raw form or terminal string into the value the named
// field expects. Blank input yields nil so optional fields stay absent.
// Values that cannot be converted are returned as the trimmed string and
// left for validation to report.
func (m *Model) Coerce(name, raw string) (any, error) {
	field, ok := m.schema.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return CoerceField(field, raw), nil
}

// CoerceField converts raw according to field's type.
func CoerceField(field schema.Field, raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if field.Relation.Many() {
		return splitList(trimmed)
	}

	switch field.Type {
	case schema.FieldTypeInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	case schema.FieldTypeNumber, schema.FieldTypeFloat:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	case schema.FieldTypeTimestamp:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
		if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
			return ts.Unix()
		}
	case schema.FieldTypeBoolean:
		if b, err := strconv.ParseBool(trimmed); err == nil {
			return b
		}
	case schema.FieldTypeEnum:
		for _, member := range field.Enum {
			if fmt.Sprint(member) == trimmed {
				return member
			}
		}
	}
	return trimmed
}

func splitList(raw string) []any {
	parts := strings.Split(raw, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
