package validation

import (
	"math"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formschema/pkg/schema"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telPattern   = regexp.MustCompile(`^\+?[0-9]([0-9 \-().]{4,18})[0-9]$`)
	urlPattern   = regexp.MustCompile(`(?i)^(https?|ftp)://[^\s/$.?#][^\s]*$`)
)

// TypePattern returns the expression behind the email, tel and url type
// rules.
func TypePattern(t schema.FieldType) (*regexp.Regexp, bool) {
	switch t {
	case schema.FieldTypeEmail:
		return emailPattern, true
	case schema.FieldTypeTel:
		return telPattern, true
	case schema.FieldTypeURL:
		return urlPattern, true
	default:
		return nil, false
	}
}

func checkRequired(field schema.Field, values map[string]any) bool {
	if isAbsent(values, field.Name) {
		return false
	}
	if field.Relation.Many() {
		if n, ok := collectionLen(values[field.Name]); ok && n == 0 {
			return false
		}
	}
	return true
}

func checkMin(bound *float64, value any) bool {
	if bound == nil {
		return true
	}
	number, ok := toFloat(value)
	return ok && number >= *bound
}

func checkMax(bound *float64, value any) bool {
	if bound == nil {
		return true
	}
	number, ok := toFloat(value)
	return ok && number <= *bound
}

// checkMinLength counts characters, not bytes. Non-string values pass.
func checkMinLength(bound *int, value any) bool {
	text, ok := toString(value)
	if bound == nil || !ok {
		return true
	}
	return utf8.RuneCountInString(text) >= *bound
}

func checkMaxLength(bound *int, value any) bool {
	text, ok := toString(value)
	if bound == nil || !ok {
		return true
	}
	return utf8.RuneCountInString(text) <= *bound
}

func checkEnum(allowed []any, value any) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if equalValues(candidate, value) {
			return true
		}
	}
	return false
}

func checkNumber(value any) bool {
	_, ok := toFloat(value)
	return ok
}

func checkInteger(value any) bool {
	number, ok := toFloat(value)
	if !ok || math.IsInf(number, 0) {
		return false
	}
	return math.Trunc(number) == number
}

// checkTimestamp accepts integral epoch values and time.Time.
func checkTimestamp(value any) bool {
	switch v := value.(type) {
	case time.Time:
		return !v.IsZero()
	case *time.Time:
		return v != nil && !v.IsZero()
	}
	return checkInteger(value)
}

func checkBoolean(value any) bool {
	if _, ok := value.(bool); ok {
		return true
	}
	number, ok := toFloat(value)
	return ok && (number == 0 || number == 1)
}

func matchString(pattern *regexp.Regexp, value any) bool {
	text, ok := toString(value)
	return ok && pattern.MatchString(text)
}
