package schema

import (
	"regexp"
)

// Rule names a single constraint predicate. Rule names are stable message
// lookup keys for HTTP and form layers; do not rename them.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMin       Rule = "min"
	RuleMax       Rule = "max"
	RuleMinLength Rule = "minLength"
	RuleMaxLength Rule = "maxLength"
	RulePattern   Rule = "pattern"
	RuleEnum      Rule = "enum"
	RuleFileType  Rule = "fileType"
	RuleMaxSize   Rule = "maxSize"
	RuleAssert    Rule = "assert"
	RuleIsOneOf   Rule = "isOneOf"
	RuleAreManyOf Rule = "areManyOf"
)

// attribute keys recorded by the builder. Pseudo attributes carry ORM or
// presentation metadata and never produce a rule.
const (
	attrName      = "name"
	attrType      = "type"
	attrLabel     = "label"
	attrRequired  = "required"
	attrUnique    = "unique"
	attrPrimary   = "primary"
	attrDefault   = "default"
	attrMin       = "min"
	attrMax       = "max"
	attrMinLength = "minLength"
	attrMaxLength = "maxLength"
	attrPattern   = "pattern"
	attrEnum      = "enum"
	attrFileType  = "fileType"
	attrMaxSize   = "maxSize"
	attrAssert    = "assert"
	attrRelation  = "relation"
)

// AssertFunc is a caller supplied predicate. It receives the field being
// validated and the full set of candidate values.
type AssertFunc func(field Field, values map[string]any) bool

// Field describes one model attribute and its constraints. Construct fields
// with NewField so the declaration order of attributes is recorded; literal
// Field values fall back to a canonical rule order.
type Field struct {
	Name      string
	Type      FieldType
	Label     string
	Required  bool
	Unique    bool
	Primary   bool
	Min       *float64
	Max       *float64
	MinLength *int
	MaxLength *int
	Pattern   *regexp.Regexp
	Enum      []any
	Default   any
	// FileTypes lists accepted MIME types or file extensions.
	FileTypes []string
	// MaxSize is a byte count or a "<N>KB" / "<N>MB" string.
	MaxSize  any
	Assert   AssertFunc
	Relation *Relation

	attrs     []string
	fullMatch *regexp.Regexp
}

// Attributes returns the attribute names in declaration order.
func (f Field) Attributes() []string {
	if len(f.attrs) == 0 {
		return f.inferredAttributes()
	}
	return append([]string(nil), f.attrs...)
}

// Rules compiles the ordered rule plan for the field: declared attribute
// order with pseudo attributes dropped, the type attribute replaced by the
// type rule and required hoisted to the front.
func (f Field) Rules() []Rule {
	attrs := f.attrs
	if len(attrs) == 0 {
		attrs = f.inferredAttributes()
	}

	out := make([]Rule, 0, len(attrs)+1)
	seen := make(map[Rule]struct{}, len(attrs)+1)
	add := func(rule Rule) {
		if rule == "" {
			return
		}
		if _, exists := seen[rule]; exists {
			return
		}
		seen[rule] = struct{}{}
		out = append(out, rule)
	}

	if f.Required {
		add(RuleRequired)
	}

	typed := false
	for _, attr := range attrs {
		switch attr {
		case attrName, attrLabel, attrUnique, attrPrimary, attrDefault, attrRequired:
			continue
		case attrType:
			add(f.Type.Rule())
			typed = true
		case attrRelation:
			if f.Relation != nil {
				add(f.Relation.Kind.Rule())
			}
		default:
			add(Rule(attr))
		}
	}
	if !typed {
		add(f.Type.Rule())
	}
	return out
}

// HasRule reports whether rule is part of the compiled plan.
func (f Field) HasRule(rule Rule) bool {
	for _, candidate := range f.Rules() {
		if candidate == rule {
			return true
		}
	}
	return false
}

// MatchPattern reports whether the entire value matches the field pattern.
// Fields without a pattern match everything.
func (f Field) MatchPattern(value string) bool {
	if f.Pattern == nil {
		return true
	}
	matcher := f.fullMatch
	if matcher == nil {
		matcher = anchor(f.Pattern)
	}
	return matcher.MatchString(value)
}

// IsRelation reports whether the field references another model.
func (f Field) IsRelation() bool {
	return f.Relation != nil && f.Relation.Target != ""
}

// Clone returns a deep copy of the field. Regular expressions and assert
// functions are shared because they are immutable.
func (f Field) Clone() Field {
	cloned := f
	if f.Min != nil {
		value := *f.Min
		cloned.Min = &value
	}
	if f.Max != nil {
		value := *f.Max
		cloned.Max = &value
	}
	if f.MinLength != nil {
		value := *f.MinLength
		cloned.MinLength = &value
	}
	if f.MaxLength != nil {
		value := *f.MaxLength
		cloned.MaxLength = &value
	}
	if len(f.Enum) > 0 {
		cloned.Enum = append([]any(nil), f.Enum...)
	}
	if len(f.FileTypes) > 0 {
		cloned.FileTypes = append([]string(nil), f.FileTypes...)
	}
	if len(f.attrs) > 0 {
		cloned.attrs = append([]string(nil), f.attrs...)
	}
	cloned.Relation = cloneRelation(f.Relation)
	return cloned
}

func (f Field) inferredAttributes() []string {
	attrs := []string{attrName, attrType}
	if f.Required {
		attrs = append(attrs, attrRequired)
	}
	if f.Min != nil {
		attrs = append(attrs, attrMin)
	}
	if f.Max != nil {
		attrs = append(attrs, attrMax)
	}
	if f.MinLength != nil {
		attrs = append(attrs, attrMinLength)
	}
	if f.MaxLength != nil {
		attrs = append(attrs, attrMaxLength)
	}
	if f.Pattern != nil {
		attrs = append(attrs, attrPattern)
	}
	if len(f.Enum) > 0 {
		attrs = append(attrs, attrEnum)
	}
	if len(f.FileTypes) > 0 {
		attrs = append(attrs, attrFileType)
	}
	if f.MaxSize != nil {
		attrs = append(attrs, attrMaxSize)
	}
	if f.Assert != nil {
		attrs = append(attrs, attrAssert)
	}
	if f.Relation != nil {
		attrs = append(attrs, attrRelation)
	}
	return attrs
}

func anchor(re *regexp.Regexp) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + re.String() + `)$`)
}
