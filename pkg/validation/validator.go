package validation

import (
	"fmt"

	"github.com/goliatone/go-formschema/pkg/mime"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Validator runs field rule plans. It holds no per-call state and is safe for
// concurrent use once its schemas and mime registry stop changing.
type Validator struct {
	mimes    *mime.Registry
	resolver SchemaResolver
	maxDepth int
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{
		mimes:    mime.Default(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate checks values against fields and returns the first failing rule
// of every failing field, or nil when all visited fields pass.
func (v *Validator) Validate(values map[string]any, fields []schema.Field) Violation {
	return v.validate(values, fields, 0)
}

// ValidateSchema is shorthand for Validate(values, s.Fields()).
func (v *Validator) ValidateSchema(values map[string]any, s *schema.Schema) Violation {
	return v.validate(values, s.Fields(), 0)
}

// CheckField runs the rule plan of a single field regardless of presence and
// reports the first failing rule.
func (v *Validator) CheckField(field schema.Field, values map[string]any) (schema.Rule, bool) {
	return v.validateField(field, values, 0)
}

func (v *Validator) validate(values map[string]any, fields []schema.Field, depth int) Violation {
	var violation Violation
	for _, field := range fields {
		if !field.Required && !hasValue(values, field.Name) {
			continue
		}
		rule, failed := v.validateField(field, values, depth)
		if !failed {
			continue
		}
		if violation == nil {
			violation = make(Violation)
		}
		violation[field.Name] = rule
	}
	return violation
}

func (v *Validator) validateField(field schema.Field, values map[string]any, depth int) (schema.Rule, bool) {
	for _, rule := range field.Rules() {
		if !v.apply(rule, field, values, depth) {
			return rule, true
		}
	}
	return "", false
}

// apply dispatches a rule to its predicate. Rules without a predicate pass;
// a panicking predicate fails its rule.
func (v *Validator) apply(rule schema.Rule, field schema.Field, values map[string]any, depth int) (ok bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Debugf("rule %s on field %s panicked: %v", rule, field.Name, recovered)
			ok = false
		}
	}()

	value := values[field.Name]

	switch rule {
	case schema.RuleRequired:
		return checkRequired(field, values)
	case schema.RuleMin:
		return checkMin(field.Min, value)
	case schema.RuleMax:
		return checkMax(field.Max, value)
	case schema.RuleMinLength:
		return checkMinLength(field.MinLength, value)
	case schema.RuleMaxLength:
		return checkMaxLength(field.MaxLength, value)
	case schema.RulePattern:
		return field.MatchPattern(fmt.Sprint(value))
	case schema.RuleEnum:
		return checkEnum(field.Enum, value)
	case schema.RuleFileType:
		return v.checkFileType(field, value)
	case schema.RuleMaxSize:
		return checkMaxSize(field, value)
	case schema.RuleAssert:
		if field.Assert == nil {
			return true
		}
		return field.Assert(field, values)
	case schema.RuleIsOneOf:
		return v.checkRelation(field, value, depth)
	case schema.RuleAreManyOf:
		return v.checkRelations(field, value, depth)
	case schema.FieldTypeInteger.Rule():
		return checkInteger(value)
	case schema.FieldTypeTimestamp.Rule():
		return checkTimestamp(value)
	case schema.FieldTypeNumber.Rule(), schema.FieldTypeFloat.Rule():
		return checkNumber(value)
	case schema.FieldTypeEmail.Rule():
		return matchString(emailPattern, value)
	case schema.FieldTypeTel.Rule():
		return matchString(telPattern, value)
	case schema.FieldTypeURL.Rule():
		return matchString(urlPattern, value)
	case schema.FieldTypeBoolean.Rule():
		return checkBoolean(value)
	default:
		return true
	}
}
