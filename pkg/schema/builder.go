package schema

import (
	"regexp"
	"strings"
)

// FieldBuilder assembles a Field one attribute at a time. Every method sets a
// single attribute, records its position in the declaration order and returns
// the builder for chaining.
type FieldBuilder struct {
	field   Field
	typeSet bool
}

// NewField starts a builder for a string field called name.
func NewField(name string) *FieldBuilder {
	b := &FieldBuilder{
		field: Field{
			Name: strings.TrimSpace(name),
			Type: FieldTypeString,
		},
	}
	b.mark(attrName)
	return b
}

// Required marks the field as mandatory.
func (b *FieldBuilder) Required() *FieldBuilder {
	b.field.Required = true
	b.mark(attrRequired)
	return b
}

// Type sets the declared field type.
func (b *FieldBuilder) Type(t FieldType) *FieldBuilder {
	b.field.Type = t
	b.typeSet = true
	b.mark(attrType)
	return b
}

// Label sets a human readable label used by message catalogs.
func (b *FieldBuilder) Label(label string) *FieldBuilder {
	b.field.Label = strings.TrimSpace(label)
	b.mark(attrLabel)
	return b
}

// Pattern requires the whole stringified value to match re.
func (b *FieldBuilder) Pattern(re *regexp.Regexp) *FieldBuilder {
	b.field.Pattern = re
	b.field.fullMatch = nil
	if re != nil {
		b.field.fullMatch = anchor(re)
	}
	b.mark(attrPattern)
	return b
}

// MinLength sets the minimum string length in characters.
func (b *FieldBuilder) MinLength(n int) *FieldBuilder {
	b.field.MinLength = &n
	b.mark(attrMinLength)
	return b
}

// MaxLength sets the maximum string length in characters.
func (b *FieldBuilder) MaxLength(n int) *FieldBuilder {
	b.field.MaxLength = &n
	b.mark(attrMaxLength)
	return b
}

// Min sets the inclusive numeric lower bound.
func (b *FieldBuilder) Min(n float64) *FieldBuilder {
	b.field.Min = &n
	b.mark(attrMin)
	return b
}

// Max sets the inclusive numeric upper bound.
func (b *FieldBuilder) Max(n float64) *FieldBuilder {
	b.field.Max = &n
	b.mark(attrMax)
	return b
}

// Assert attaches a custom predicate.
func (b *FieldBuilder) Assert(fn AssertFunc) *FieldBuilder {
	b.field.Assert = fn
	b.mark(attrAssert)
	return b
}

// Enum restricts values to the supplied list. A non-empty list switches the
// field type to enum.
func (b *FieldBuilder) Enum(values ...any) *FieldBuilder {
	b.field.Enum = append([]any(nil), values...)
	b.mark(attrEnum)
	if len(values) > 0 {
		b.field.Type = FieldTypeEnum
		b.typeSet = true
		b.mark(attrType)
	}
	return b
}

// Default records the default value. It carries no validation meaning.
func (b *FieldBuilder) Default(value any) *FieldBuilder {
	b.field.Default = value
	b.mark(attrDefault)
	return b
}

// Unique flags the field as unique for storage layers. Called without
// arguments it sets true.
func (b *FieldBuilder) Unique(flag ...bool) *FieldBuilder {
	b.field.Unique = len(flag) == 0 || flag[0]
	b.mark(attrUnique)
	return b
}

// Primary flags the field as the model key. A primary field is validated as
// a string regardless of its declared type.
func (b *FieldBuilder) Primary(flag ...bool) *FieldBuilder {
	b.field.Primary = len(flag) == 0 || flag[0]
	b.mark(attrPrimary)
	if b.field.Primary {
		b.field.Type = FieldTypeString
		b.typeSet = true
		b.mark(attrType)
	}
	return b
}

// MaxSize limits uploaded file size. size is a byte count or a "<N>KB" /
// "<N>MB" string.
func (b *FieldBuilder) MaxSize(size any) *FieldBuilder {
	b.field.MaxSize = size
	b.mark(attrMaxSize)
	return b
}

// FileType lists the accepted uploads as MIME types ("image/png") or
// extensions ("png", ".png").
func (b *FieldBuilder) FileType(types ...string) *FieldBuilder {
	accepted := make([]string, 0, len(types))
	for _, item := range types {
		if trimmed := strings.ToLower(strings.TrimSpace(item)); trimmed != "" {
			accepted = append(accepted, trimmed)
		}
	}
	b.field.FileTypes = accepted
	b.mark(attrFileType)
	return b
}

// IsOneOf references a single record of the target model.
func (b *FieldBuilder) IsOneOf(target string) *FieldBuilder {
	return b.relation(RelationOne, target)
}

// AreManyOf references a collection of records of the target model.
func (b *FieldBuilder) AreManyOf(target string) *FieldBuilder {
	return b.relation(RelationMany, target)
}

func (b *FieldBuilder) relation(kind RelationKind, target string) *FieldBuilder {
	b.field.Relation = &Relation{Kind: kind, Target: strings.TrimSpace(target)}
	b.mark(attrRelation)
	if !b.typeSet {
		b.field.Type = FieldTypeRelation
		b.mark(attrType)
	}
	return b
}

// Build returns the immutable Field. The builder may keep being used; later
// changes do not affect fields already built.
func (b *FieldBuilder) Build() Field {
	field := b.field.Clone()
	switch {
	case field.Primary:
		field.Type = FieldTypeString
	case len(field.Enum) > 0:
		field.Type = FieldTypeEnum
	}
	return field
}

func (b *FieldBuilder) mark(attr string) {
	for _, existing := range b.field.attrs {
		if existing == attr {
			return
		}
	}
	b.field.attrs = append(b.field.attrs, attr)
}

// BuildFields builds every builder in order.
func BuildFields(builders ...*FieldBuilder) []Field {
	fields := make([]Field, 0, len(builders))
	for _, builder := range builders {
		if builder == nil {
			continue
		}
		fields = append(fields, builder.Build())
	}
	return fields
}
