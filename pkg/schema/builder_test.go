package schema

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldRulesFollowDeclarationOrder(t *testing.T) {
	digits := regexp.MustCompile(`[0-9]+`)

	cases := []struct {
		name    string
		builder *FieldBuilder
		want    []Rule
	}{
		{
			name:    "plain string",
			builder: NewField("title"),
			want:    []Rule{"string"},
		},
		{
			name:    "required hoisted",
			builder: NewField("code").MinLength(5).Pattern(digits).Required(),
			want:    []Rule{RuleRequired, RuleMinLength, RulePattern, "string"},
		},
		{
			name:    "type replaced in place",
			builder: NewField("age").Min(0).Type(FieldTypeInteger).Max(130),
			want:    []Rule{RuleMin, "integer", RuleMax},
		},
		{
			name:    "pseudo attributes dropped",
			builder: NewField("slug").Label("Slug").Unique().Default("home").MaxLength(10),
			want:    []Rule{RuleMaxLength, "string"},
		},
		{
			name:    "enum deduplicated",
			builder: NewField("status").Enum("draft", "published"),
			want:    []Rule{RuleEnum},
		},
		{
			name:    "relation without type",
			builder: NewField("author").IsOneOf("user"),
			want:    []Rule{RuleIsOneOf, "relation"},
		},
		{
			name:    "relation keeps declared type",
			builder: NewField("tags").Type(FieldTypeObject).AreManyOf("tag"),
			want:    []Rule{"object", RuleAreManyOf},
		},
		{
			name:    "file constraints",
			builder: NewField("avatar").Type(FieldTypeFile).FileType("PNG").MaxSize("1MB").Required(),
			want:    []Rule{RuleRequired, "file", RuleFileType, RuleMaxSize},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.builder.Build().Rules()); diff != "" {
				t.Fatalf("rules mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLiteralFieldUsesCanonicalOrder(t *testing.T) {
	lower := 1.0
	field := Field{Name: "qty", Type: FieldTypeInteger, Required: true, Min: &lower}

	want := []Rule{RuleRequired, "integer", RuleMin}
	if diff := cmp.Diff(want, field.Rules()); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	if !field.HasRule(RuleMin) || field.HasRule(RuleMax) {
		t.Fatalf("unexpected HasRule results for %v", field.Rules())
	}
}

func TestFieldAttributesRecordOrder(t *testing.T) {
	field := NewField("email").Type(FieldTypeEmail).Required().Label("E-mail").Build()

	want := []string{"name", "type", "required", "label"}
	if diff := cmp.Diff(want, field.Attributes()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if field.Label != "E-mail" {
		t.Fatalf("expected label, got %q", field.Label)
	}
}

func TestPrimaryForcesStringType(t *testing.T) {
	field := NewField("id").Type(FieldTypeInteger).Primary().Build()
	if field.Type != FieldTypeString {
		t.Fatalf("expected string type, got %s", field.Type)
	}
	if !field.Primary {
		t.Fatalf("expected primary flag")
	}

	late := NewField("id").Primary().Type(FieldTypeInteger).Build()
	if late.Type != FieldTypeString {
		t.Fatalf("expected primary to win over a later type, got %s", late.Type)
	}

	off := NewField("id").Primary(false).Type(FieldTypeInteger).Build()
	if off.Primary || off.Type != FieldTypeInteger {
		t.Fatalf("expected Primary(false) to leave type alone, got %+v", off)
	}
}

func TestEnumForcesEnumType(t *testing.T) {
	field := NewField("status").Enum("a", "b").Type(FieldTypeString).Build()
	if field.Type != FieldTypeEnum {
		t.Fatalf("expected enum type, got %s", field.Type)
	}
	if diff := cmp.Diff([]any{"a", "b"}, field.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildIsolatesBuilderChanges(t *testing.T) {
	builder := NewField("qty").Min(1).Enum(1, 2)
	first := builder.Build()

	builder.Min(5).Enum(3)
	second := builder.Build()

	if *first.Min != 1 || *second.Min != 5 {
		t.Fatalf("expected isolated mins, got %v and %v", *first.Min, *second.Min)
	}
	if diff := cmp.Diff([]any{1, 2}, first.Enum); diff != "" {
		t.Fatalf("first enum changed (-want +got):\n%s", diff)
	}
}

func TestFieldCloneIsDeep(t *testing.T) {
	original := NewField("avatar").FileType("png").MaxLength(3).IsOneOf("user").Build()
	cloned := original.Clone()

	cloned.FileTypes[0] = "gif"
	*cloned.MaxLength = 99
	cloned.Relation.Target = "post"

	if original.FileTypes[0] != "png" || *original.MaxLength != 3 || original.Relation.Target != "user" {
		t.Fatalf("clone shares state with original: %+v", original)
	}
}

func TestMatchPatternIsAnchored(t *testing.T) {
	field := NewField("slug").Pattern(regexp.MustCompile(`[a-z]+|[0-9]+`)).Build()

	for value, want := range map[string]bool{
		"abc":  true,
		"123":  true,
		"abc1": false,
		" abc": false,
		"":     false,
	} {
		if got := field.MatchPattern(value); got != want {
			t.Fatalf("MatchPattern(%q) = %v, want %v", value, got, want)
		}
	}

	literal := Field{Name: "zip", Pattern: regexp.MustCompile(`\d{5}`)}
	if literal.MatchPattern("123456") {
		t.Fatalf("expected literal field pattern to be anchored too")
	}
}

func TestParseFieldType(t *testing.T) {
	for raw, want := range map[string]FieldType{
		"EMail":    FieldTypeEmail,
		" url ":    FieldTypeURL,
		"integer":  FieldTypeInteger,
		"RELATION": FieldTypeRelation,
	} {
		got, ok := ParseFieldType(raw)
		if !ok || got != want {
			t.Fatalf("ParseFieldType(%q) = %q, %v", raw, got, ok)
		}
	}
	if _, ok := ParseFieldType("decimal"); ok {
		t.Fatalf("expected unknown type to be rejected")
	}
	if FieldType("").Rule() != "string" {
		t.Fatalf("expected zero type to map to the string rule")
	}
	if len(FieldTypes()) != 15 {
		t.Fatalf("expected 15 field types, got %d", len(FieldTypes()))
	}
}

func TestParseRelationKind(t *testing.T) {
	for raw, want := range map[string]RelationKind{
		"isOneOf":    RelationOne,
		"belongsTo":  RelationOne,
		"hasMany":    RelationMany,
		"manyToMany": RelationMany,
		"areManyOf":  RelationMany,
	} {
		got, ok := ParseRelationKind(raw)
		if !ok || got != want {
			t.Fatalf("ParseRelationKind(%q) = %q, %v", raw, got, ok)
		}
	}
	if _, ok := ParseRelationKind("sometimes"); ok {
		t.Fatalf("expected unknown relation kind to be rejected")
	}
}
