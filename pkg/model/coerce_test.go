package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/schema"
)

func TestCoerceField(t *testing.T) {
	cases := []struct {
		name  string
		field *schema.FieldBuilder
		raw   string
		want  any
	}{
		{"blank", schema.NewField("x"), "   ", nil},
		{"string", schema.NewField("x"), " hi ", "hi"},
		{"integer", schema.NewField("x").Type(schema.FieldTypeInteger), "42", int64(42)},
		{"integer fraction", schema.NewField("x").Type(schema.FieldTypeInteger), "4.5", 4.5},
		{"integer junk", schema.NewField("x").Type(schema.FieldTypeInteger), "abc", "abc"},
		{"number", schema.NewField("x").Type(schema.FieldTypeNumber), "1.25", 1.25},
		{"boolean", schema.NewField("x").Type(schema.FieldTypeBoolean), "true", true},
		{"timestamp epoch", schema.NewField("x").Type(schema.FieldTypeTimestamp), "1700000000", int64(1700000000)},
		{"timestamp rfc3339", schema.NewField("x").Type(schema.FieldTypeTimestamp), "1970-01-01T00:01:00Z", int64(60)},
		{"enum member", schema.NewField("x").Enum(1, 2), "2", 2},
		{"enum miss", schema.NewField("x").Enum("a"), "b", "b"},
		{"many relation", schema.NewField("x").AreManyOf("tag"), "go, rust,,", []any{"go", "rust"}},
		{"one relation", schema.NewField("x").IsOneOf("user"), "user-1", "user-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := model.CoerceField(tc.field.Build(), tc.raw)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("coerce mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCoerceUnknownField(t *testing.T) {
	m := model.New(schema.MustNew("tag", schema.NewField("slug")), nil)

	if _, err := m.Coerce("missing", "x"); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	got, err := m.Coerce("slug", "go")
	if err != nil || got != "go" {
		t.Fatalf("unexpected coerce result %v, %v", got, err)
	}
}
