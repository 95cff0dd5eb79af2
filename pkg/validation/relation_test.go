package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/testsupport"
	"github.com/goliatone/go-formschema/pkg/validation"
)

type stubRecord map[string]any

func (r stubRecord) PresentValues() map[string]any {
	out := make(map[string]any, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}

func TestValidate_RelationsAcceptForeignKeys(t *testing.T) {
	v := validation.New(validation.WithResolver(testsupport.Registry(t)))
	fields := testsupport.PostSchema().Fields()

	values := map[string]any{
		"title":  "Hello",
		"author": "user-1",
		"tags":   []any{"go", 42},
	}
	if got := v.Validate(values, fields); got != nil {
		t.Fatalf("expected foreign keys to pass, got %v", got)
	}
}

func TestValidate_NestedRecordsValidatePresentFieldsOnly(t *testing.T) {
	v := validation.New(validation.WithResolver(testsupport.Registry(t)))
	fields := testsupport.PostSchema().Fields()

	// email is required on user but absent here, so it is not checked.
	partial := map[string]any{
		"title":  "Hello",
		"author": map[string]any{"age": 30},
	}
	if got := v.Validate(partial, fields); got != nil {
		t.Fatalf("expected partial nested record to pass, got %v", got)
	}

	invalid := map[string]any{
		"title":  "Hello",
		"author": map[string]any{"email": "bad"},
		"tags":   []any{map[string]any{"slug": "UPPER"}},
	}
	want := validation.Violation{"author": "isOneOf", "tags": "areManyOf"}
	if diff := cmp.Diff(want, v.Validate(invalid, fields)); diff != "" {
		t.Fatalf("violation mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_NestedRecordInterface(t *testing.T) {
	v := validation.New(validation.WithResolver(testsupport.Registry(t)))
	fields := testsupport.PostSchema().Fields()

	ok := map[string]any{"title": "Hello", "author": stubRecord{"email": "a@b.com"}}
	if got := v.Validate(ok, fields); got != nil {
		t.Fatalf("expected record to pass, got %v", got)
	}

	bad := map[string]any{"title": "Hello", "author": stubRecord{"age": 500}}
	if got := v.Validate(bad, fields); got["author"] != schema.RuleIsOneOf {
		t.Fatalf("expected isOneOf violation, got %v", got)
	}
}

func TestValidate_ManyRelationShape(t *testing.T) {
	v := validation.New(validation.WithResolver(testsupport.Registry(t)))
	fields := schema.BuildFields(schema.NewField("tags").AreManyOf(testsupport.TagModel).Required())

	cases := []struct {
		value any
		want  validation.Violation
	}{
		{[]any{}, validation.Violation{"tags": "required"}},
		{[]string{}, validation.Violation{"tags": "required"}},
		{[]string{"go"}, nil},
		{"go", validation.Violation{"tags": "areManyOf"}},
		{[]any{map[string]any{"slug": "fine-slug"}}, nil},
		{[]any{"go", true}, validation.Violation{"tags": "areManyOf"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, v.Validate(map[string]any{"tags": tc.value}, fields)); diff != "" {
			t.Fatalf("violation mismatch for %v (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestValidate_RelationWithoutResolverFails(t *testing.T) {
	v := validation.New()
	fields := testsupport.PostSchema().Fields()

	if got := v.Validate(map[string]any{"title": "Hello", "author": "user-1"}, fields); got != nil {
		t.Fatalf("expected foreign key to pass without resolver, got %v", got)
	}
	got := v.Validate(map[string]any{"title": "Hello", "author": map[string]any{"email": "a@b.com"}}, fields)
	if got["author"] != schema.RuleIsOneOf {
		t.Fatalf("expected nested record to fail without resolver, got %v", got)
	}
}

func TestValidate_UnknownRelationTargetFails(t *testing.T) {
	v := validation.New(validation.WithResolver(schema.NewRegistry()))
	fields := schema.BuildFields(schema.NewField("owner").IsOneOf("ghost"))

	got := v.Validate(map[string]any{"owner": map[string]any{"name": "x"}}, fields)
	if diff := cmp.Diff(validation.Violation{"owner": "isOneOf"}, got); diff != "" {
		t.Fatalf("violation mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_MaxDepthBoundsSelfReference(t *testing.T) {
	registry := schema.NewRegistry()
	node := schema.MustNew("node",
		schema.NewField("name").Required(),
		schema.NewField("parent").IsOneOf("node"),
	)
	if err := registry.Register(node); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Four nested parents below the root record.
	values := map[string]any{"name": "n0"}
	current := values
	for i := 1; i <= 4; i++ {
		parent := map[string]any{"name": "n"}
		current["parent"] = parent
		current = parent
	}

	shallow := validation.New(validation.WithResolver(registry), validation.WithMaxDepth(3))
	if got := shallow.ValidateSchema(values, node); got["parent"] != schema.RuleIsOneOf {
		t.Fatalf("expected depth limit to fail the relation, got %v", got)
	}

	deep := validation.New(validation.WithResolver(registry), validation.WithMaxDepth(4))
	if got := deep.ValidateSchema(values, node); got != nil {
		t.Fatalf("expected chain within depth to pass, got %v", got)
	}
}

func TestCheckField_IgnoresPresence(t *testing.T) {
	v := validation.New()
	field := schema.NewField("nickname").MinLength(3).Build()

	rule, failed := v.CheckField(field, map[string]any{})
	if failed {
		t.Fatalf("expected absent optional value to satisfy its rules, got %s", rule)
	}

	rule, failed = v.CheckField(field, map[string]any{"nickname": "ab"})
	if !failed || rule != schema.RuleMinLength {
		t.Fatalf("expected minLength failure, got %q (%v)", rule, failed)
	}
}
