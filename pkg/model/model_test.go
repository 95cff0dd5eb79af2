package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/testsupport"
	"github.com/goliatone/go-formschema/pkg/validation"
)

func newUser(t *testing.T) *model.Model {
	t.Helper()
	v := validation.New(validation.WithResolver(testsupport.Registry(t)))
	return model.New(testsupport.UserSchema(), v)
}

func TestSetValuesCopiesDeclaredKeysOnly(t *testing.T) {
	user := newUser(t)
	user.SetValues(map[string]any{"email": "a@b.com", "age": 30, "admin": true})
	user.SetValues(map[string]any{"age": 31})

	want := map[string]any{"email": "a@b.com", "age": 31}
	if diff := cmp.Diff(want, user.GetValues("email", "age", "admin")); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if _, ok := user.Get("admin"); ok {
		t.Fatalf("expected undeclared key to be ignored")
	}
}

func TestGetValuesDefaultsToAllFields(t *testing.T) {
	user := newUser(t)
	user.SetValues(map[string]any{"email": "a@b.com"})

	got := user.GetValues()
	if diff := cmp.Diff(testsupport.UserSchema().FieldNames(), keysInSchemaOrder(got)); diff != "" {
		t.Fatalf("field set mismatch (-want +got):\n%s", diff)
	}
	if got["email"] != "a@b.com" || got["age"] != nil {
		t.Fatalf("unexpected values %v", got)
	}
}

func keysInSchemaOrder(values map[string]any) []string {
	var out []string
	for _, name := range testsupport.UserSchema().FieldNames() {
		if _, ok := values[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

func TestSetValuesRoundTrip(t *testing.T) {
	user := newUser(t)
	user.SetValues(map[string]any{"email": "a@b.com", "age": 30, "nickname": "gopher"})

	before := user.GetValues()
	user.SetValues(user.GetValues())
	if diff := cmp.Diff(before, user.GetValues()); diff != "" {
		t.Fatalf("round trip changed values (-before +after):\n%s", diff)
	}
}

func TestValidateWholeRecord(t *testing.T) {
	user := newUser(t)
	user.SetValues(map[string]any{"email": "not-an-email", "age": 200})

	want := validation.Violation{"email": "email", "age": "max"}
	if diff := cmp.Diff(want, user.Validate()); diff != "" {
		t.Fatalf("violation mismatch (-want +got):\n%s", diff)
	}

	user.SetValues(map[string]any{"email": "a@b.com", "age": 30})
	if got := user.Validate(); got != nil {
		t.Fatalf("expected valid record, got %v", got)
	}
}

func TestValidateSubset(t *testing.T) {
	user := newUser(t)
	user.SetValues(map[string]any{"age": 200})

	if diff := cmp.Diff(validation.Violation{"age": "max"}, user.Validate("age")); diff != "" {
		t.Fatalf("violation mismatch (-want +got):\n%s", diff)
	}

	user.Set("age", 40)
	if got := user.Validate("age"); got != nil {
		t.Fatalf("expected subset to ignore the missing required email, got %v", got)
	}
	if got := user.Validate(); got["email"] != schema.RuleRequired {
		t.Fatalf("expected full validation to report email, got %v", got)
	}
}

func TestCheckReturnsTypedError(t *testing.T) {
	user := newUser(t)

	err := user.Check()
	if !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	violation, ok := validation.AsViolation(err)
	if !ok || violation["email"] != schema.RuleRequired {
		t.Fatalf("expected email violation, got %v", violation)
	}

	user.Set("email", "a@b.com")
	if err := user.Check(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestSetRejectsUndeclaredFields(t *testing.T) {
	user := newUser(t)
	if user.Set("admin", true) {
		t.Fatalf("expected Set to reject undeclared field")
	}
	if !user.Set("age", 3) {
		t.Fatalf("expected Set to accept declared field")
	}
}

func TestNestedModelIsValidated(t *testing.T) {
	registry := testsupport.Registry(t)
	v := validation.New(validation.WithResolver(registry))

	author := model.New(testsupport.UserSchema(), v)
	author.SetValues(map[string]any{"email": "a@b.com", "age": 500})

	post := model.New(testsupport.PostSchema(), v)
	post.SetValues(map[string]any{"title": "Hello", "author": author})

	if diff := cmp.Diff(validation.Violation{"author": "isOneOf"}, post.Validate()); diff != "" {
		t.Fatalf("violation mismatch (-want +got):\n%s", diff)
	}

	author.Set("age", 50)
	if got := post.Validate(); got != nil {
		t.Fatalf("expected valid nested author, got %v", got)
	}
}

func TestNestedPartialModelChecksAssignedFieldsOnly(t *testing.T) {
	registry := testsupport.Registry(t)
	v := validation.New(validation.WithResolver(registry))

	author := model.New(testsupport.UserSchema(), v)
	author.Set("id", "u1")

	if diff := cmp.Diff(map[string]any{"id": "u1"}, author.PresentValues()); diff != "" {
		t.Fatalf("present values mismatch (-want +got):\n%s", diff)
	}

	asModel := model.New(testsupport.PostSchema(), v)
	asModel.SetValues(map[string]any{"title": "Hello", "author": author})
	asMap := model.New(testsupport.PostSchema(), v)
	asMap.SetValues(map[string]any{"title": "Hello", "author": map[string]any{"id": "u1"}})

	if diff := cmp.Diff(asMap.Validate(), asModel.Validate()); diff != "" {
		t.Fatalf("model and map forms disagree (-map +model):\n%s", diff)
	}
	if got := asModel.Validate(); got != nil {
		t.Fatalf("expected partial author to pass, got %v", got)
	}
}
