package jsonschema_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/jsonschema"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/testsupport"
)

func TestExportScalarFields(t *testing.T) {
	tag := schema.MustNew("tag",
		schema.NewField("id").Primary(),
		schema.NewField("slug").Required().Pattern(regexp.MustCompile(`[a-z-]+`)),
		schema.NewField("weight").Type(schema.FieldTypeInteger).Min(1).Label("Weight"),
		schema.NewField("kind").Enum("topic", "series").Default("topic"),
	)

	got, err := jsonschema.Export(tag, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	want := map[string]any{
		"$schema": jsonschema.Dialect,
		"title":   "tag",
		"type":    "object",
		"properties": map[string]any{
			"id": map[string]any{},
			"slug": map[string]any{
				"pattern": "^(?:[a-z-]+)$",
				"not":     map[string]any{"enum": []any{"", nil}},
			},
			"weight": map[string]any{
				"title":   "Weight",
				"type":    "integer",
				"minimum": 1.0,
			},
			"kind": map[string]any{
				"enum":    []any{"topic", "series"},
				"default": "topic",
			},
		},
		"required": []string{"slug"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestExportRelationsWithoutResolver(t *testing.T) {
	got, err := jsonschema.Export(testsupport.PostSchema(), nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	properties := got["properties"].(map[string]any)

	one := map[string]any{
		"anyOf": []any{
			map[string]any{"type": []any{"string", "number"}},
			map[string]any{"type": "object"},
		},
	}
	if diff := cmp.Diff(one, properties["author"]); diff != "" {
		t.Fatalf("author mismatch (-want +got):\n%s", diff)
	}
	many := map[string]any{"type": "array", "items": one}
	if diff := cmp.Diff(many, properties["tags"]); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestExportInlinesTargets(t *testing.T) {
	registry := testsupport.Registry(t)
	post, _ := registry.Schema(testsupport.PostModel)

	got, err := jsonschema.Export(post, registry)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	tags := got["properties"].(map[string]any)["tags"].(map[string]any)
	tag := tags["items"].(map[string]any)["anyOf"].([]any)[1].(map[string]any)
	if _, ok := tag["properties"].(map[string]any)["slug"]; !ok {
		t.Fatalf("expected tag properties to be inlined, got %v", tag)
	}
	if _, ok := tag["required"]; ok {
		t.Fatalf("nested objects must not carry a required list")
	}

	if _, err := jsonschema.Export(post, schema.NewRegistry()); !errors.Is(err, schema.ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
	if _, err := jsonschema.Export(nil, nil); !errors.Is(err, jsonschema.ErrNilSchema) {
		t.Fatalf("expected ErrNilSchema, got %v", err)
	}
}

func TestExporterDepthCutsCycles(t *testing.T) {
	node := schema.MustNew("node",
		schema.NewField("name").Required(),
		schema.NewField("parent").IsOneOf("node"),
	)
	registry := schema.NewRegistry().MustRegister(node)

	got, err := jsonschema.Exporter{Resolver: registry, Depth: 1}.Export(node)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	parent := got["properties"].(map[string]any)["parent"].(map[string]any)
	nested := parent["anyOf"].([]any)[1].(map[string]any)
	grandparent := nested["properties"].(map[string]any)["parent"].(map[string]any)
	if diff := cmp.Diff(map[string]any{"type": "object"}, grandparent["anyOf"].([]any)[1]); diff != "" {
		t.Fatalf("expected depth limit to stop inlining (-want +got):\n%s", diff)
	}
}

func TestCompileValidatesRecords(t *testing.T) {
	registry := testsupport.Registry(t)
	user, _ := registry.Schema(testsupport.UserModel)

	compiled, err := jsonschema.Compile(user, registry)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	ctx := context.Background()
	valid := []byte(`{"id": "u1", "email": "ada@example.com", "age": 36, "nickname": "ada_l", "posts": [{"title": "Hello"}, "p2"]}`)
	errs, err := jsonschema.ValidateBytes(ctx, compiled, valid)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected valid record, got %v", errs)
	}

	invalid := []byte(`{"email": "ada@example.com", "age": 200}`)
	errs, err = jsonschema.ValidateBytes(ctx, compiled, invalid)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	found := false
	for path := range errs {
		if strings.Contains(path, "age") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an error for age, got %v", errs)
	}

	missing, err := jsonschema.ValidateBytes(ctx, compiled, []byte(`{"age": 30}`))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(missing) == 0 {
		t.Fatalf("expected missing email to fail")
	}
}
