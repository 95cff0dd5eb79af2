package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fixtureRegistry(t *testing.T) *Registry {
	t.Helper()

	return NewRegistry().MustRegister(
		MustNew("user",
			NewField("id").Primary(),
			NewField("posts").AreManyOf("post"),
		),
		MustNew("post",
			NewField("id").Primary(),
			NewField("author").IsOneOf("user"),
			NewField("tags").AreManyOf("tag"),
		),
		MustNew("tag", NewField("slug").Required()),
	)
}

func TestRegistryLookup(t *testing.T) {
	registry := fixtureRegistry(t)

	if diff := cmp.Diff([]string{"post", "tag", "user"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if registry.Len() != 3 {
		t.Fatalf("expected 3 schemas, got %d", registry.Len())
	}
	if s, ok := registry.Schema(" tag "); !ok || s.Name() != "tag" {
		t.Fatalf("expected tag schema")
	}
	if _, ok := registry.Schema("ghost"); ok {
		t.Fatalf("expected missing schema")
	}
}

func TestRegistryRejectsDuplicatesAndUnnamed(t *testing.T) {
	registry := fixtureRegistry(t)

	if err := registry.Register(New("tag")); !errors.Is(err, ErrDuplicateModel) {
		t.Fatalf("expected ErrDuplicateModel, got %v", err)
	}
	if err := registry.Register(New("  ")); !errors.Is(err, ErrModelNameMissing) {
		t.Fatalf("expected ErrModelNameMissing, got %v", err)
	}
	if err := registry.Register(nil); !errors.Is(err, ErrModelNameMissing) {
		t.Fatalf("expected ErrModelNameMissing for nil, got %v", err)
	}
}

func TestRegistryCheck(t *testing.T) {
	registry := fixtureRegistry(t)
	if err := registry.Check(); err != nil {
		t.Fatalf("check: %v", err)
	}

	if err := registry.Register(MustNew("comment", NewField("post").IsOneOf("article"))); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := registry.Check()
	if !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Model != "comment" || fieldErr.Field != "post" {
		t.Fatalf("expected comment.post FieldError, got %v", err)
	}
}

func TestRegistryCycles(t *testing.T) {
	registry := fixtureRegistry(t)

	want := [][]string{{"post", "user", "post"}}
	if diff := cmp.Diff(want, registry.Cycles()); diff != "" {
		t.Fatalf("cycles mismatch (-want +got):\n%s", diff)
	}

	acyclic := NewRegistry().MustRegister(
		MustNew("post", NewField("tags").AreManyOf("tag")),
		MustNew("tag", NewField("slug")),
	)
	if got := acyclic.Cycles(); got != nil {
		t.Fatalf("expected no cycles, got %v", got)
	}

	self := NewRegistry().MustRegister(MustNew("node", NewField("parent").IsOneOf("node")))
	if diff := cmp.Diff([][]string{{"node", "node"}}, self.Cycles()); diff != "" {
		t.Fatalf("self cycle mismatch (-want +got):\n%s", diff)
	}
}
