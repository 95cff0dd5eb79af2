package messages_test

import (
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formschema/pkg/messages"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/testsupport"
	"github.com/goliatone/go-formschema/pkg/validation"
)

func TestCatalogMatchesLocales(t *testing.T) {
	catalog := messages.NewCatalog()

	cases := map[string]string{
		"":                 "en",
		"es":               "es",
		"es-MX":            "es",
		"fr-CH, es;q=0.8":  "es",
		"de":               "en",
		"not a locale tag": "en",
	}
	for in, want := range cases {
		if got := catalog.Match(in); got != want {
			t.Fatalf("Match(%q) = %q, want %q", in, got, want)
		}
	}
	if diff := cmp.Diff([]string{"en", "es"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogTranslateInterpolates(t *testing.T) {
	catalog := messages.NewCatalog()

	got, err := catalog.Translate("es", "rules.minLength", map[string]any{"label": "Apodo", "minLength": "3"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if want := "Apodo debe tener al menos 3 caracteres"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}

	if _, err := catalog.Translate("en", "rules.unknown"); !errors.Is(err, messages.ErrMissingMessage) {
		t.Fatalf("expected ErrMissingMessage, got %v", err)
	}
}

func TestCatalogFallsBackPerKey(t *testing.T) {
	catalog := messages.NewCatalog()
	if err := catalog.Add("es", map[string]string{"fields.age.max": "Demasiado mayor"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := catalog.Add("en", map[string]string{"custom.only": "English only"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got, ok := catalog.Lookup("es", "custom.only"); !ok || got != "English only" {
		t.Fatalf("expected fallback to english, got %q (%v)", got, ok)
	}
	if got, ok := catalog.Lookup("es-AR", "fields.age.max"); !ok || got != "Demasiado mayor" {
		t.Fatalf("expected spanish override, got %q (%v)", got, ok)
	}
	if err := catalog.Add("???", nil); err == nil {
		t.Fatalf("expected invalid locale to be rejected")
	}
}

func TestCatalogWithoutBuiltins(t *testing.T) {
	catalog := messages.NewCatalog(messages.WithoutBuiltins(), messages.WithFallback("es"))
	if got := catalog.Locales(); len(got) != 0 {
		t.Fatalf("expected empty catalog, got %v", got)
	}
	if _, ok := catalog.Lookup("es", "rules.required"); ok {
		t.Fatalf("expected no builtin messages")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"fr.yaml": &fstest.MapFile{Data: []byte(`
rules:
  required: "{label} est obligatoire"
fields:
  email:
    email: "Adresse e-mail invalide"
`)},
		"es.yml":    &fstest.MapFile{Data: []byte("rules:\n  required: \"Falta {label}\"\n")},
		"README.md": &fstest.MapFile{Data: []byte("ignored")},
	}

	catalog := messages.NewCatalog()
	if err := catalog.LoadFS(fsys); err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"en", "es", "fr"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	got, err := catalog.Translate("fr", "rules.required", map[string]any{"label": "Nom"})
	if err != nil || got != "Nom est obligatoire" {
		t.Fatalf("unexpected french message %q (%v)", got, err)
	}
	if got, _ := catalog.Lookup("fr", "fields.email.email"); got != "Adresse e-mail invalide" {
		t.Fatalf("expected nested key to flatten, got %q", got)
	}
	if got, _ := catalog.Lookup("es", "rules.required"); got != "Falta {label}" {
		t.Fatalf("expected file to override builtin, got %q", got)
	}

	if err := messages.NewCatalog().LoadFS(fstest.MapFS{}); !errors.Is(err, messages.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	bad := fstest.MapFS{"en.yaml": &fstest.MapFile{Data: []byte("rules: [1, 2]")}}
	if err := messages.NewCatalog().LoadFS(bad); err == nil {
		t.Fatalf("expected list values to be rejected")
	}
}

func TestLocalize(t *testing.T) {
	catalog := messages.NewCatalog()
	fields := testsupport.UserSchema().Fields()
	violation := validation.Violation{"email": "email", "age": "max"}

	english := messages.Localize(violation, fields, messages.Options{Locale: "en-GB", Translator: catalog})
	want := map[string][]string{
		"email": {"E-mail must be a valid email address"},
		"age":   {"Age must be at most 130"},
	}
	if diff := cmp.Diff(want, english.Fields); diff != "" {
		t.Fatalf("english mismatch (-want +got):\n%s", diff)
	}

	spanish := messages.Localize(violation, fields, messages.Options{Locale: "es", Translator: catalog})
	want = map[string][]string{
		"email": {"E-mail debe ser un correo electrónico válido"},
		"age":   {"Age debe ser como máximo 130"},
	}
	if diff := cmp.Diff(want, spanish.Fields); diff != "" {
		t.Fatalf("spanish mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalizePrefersFieldKeys(t *testing.T) {
	catalog := messages.NewCatalog()
	if err := catalog.Add("en", map[string]string{"fields.age.max": "Nobody is older than {max}"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := messages.Localize(validation.Violation{"age": "max"}, testsupport.UserSchema().Fields(), messages.Options{Translator: catalog})
	if diff := cmp.Diff([]string{"Nobody is older than 130"}, got.Fields["age"]); diff != "" {
		t.Fatalf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalizeMissingTranslations(t *testing.T) {
	violation := validation.Violation{"email": "email"}
	fields := testsupport.UserSchema().Fields()

	got := messages.Localize(violation, fields, messages.Options{})
	if diff := cmp.Diff(map[string][]string{"email": {"email"}}, got.Fields); diff != "" {
		t.Fatalf("default fallback mismatch (-want +got):\n%s", diff)
	}

	var gotErr error
	custom := messages.Localize(violation, fields, messages.Options{
		Translator: messages.NewCatalog(messages.WithoutBuiltins()),
		OnMissing: func(locale, key string, params []any, err error) string {
			gotErr = err
			return "missing:" + key
		},
	})
	if custom.Fields["email"][0] != "missing:rules.email" {
		t.Fatalf("unexpected custom fallback %v", custom.Fields)
	}
	if !errors.Is(gotErr, messages.ErrMissingMessage) {
		t.Fatalf("expected ErrMissingMessage, got %v", gotErr)
	}

	if got := messages.Localize(nil, fields, messages.Options{}); got.Fields != nil || got.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", got)
	}
}

func TestParamsStripMarkup(t *testing.T) {
	field := schema.NewField("first_name").Enum("<b>a</b>", "b").Build()

	params := messages.Params(field, schema.RuleEnum)
	if params["label"] != "First Name" {
		t.Fatalf("expected humanized label, got %v", params["label"])
	}
	if params["enum"] != "a, b" {
		t.Fatalf("expected sanitized enum list, got %v", params["enum"])
	}

	labelled := schema.NewField("bio").Label(`<script>alert(1)</script>Bio`).MaxLength(10).Build()
	params = messages.Params(labelled, schema.RuleMaxLength)
	if params["label"] != "Bio" || params["maxLength"] != "10" {
		t.Fatalf("unexpected params %v", params)
	}
}

func TestParamsKeepPlainTextEntities(t *testing.T) {
	field := schema.NewField("code").
		Label(`Q&A "tag"`).
		Pattern(regexp.MustCompile(`^a&b$`)).
		Enum("x&y", "<i>z</i>").
		Build()

	params := messages.Params(field, schema.RulePattern)
	want := map[string]string{
		"label":   `Q&A "tag"`,
		"pattern": "^a&b$",
		"enum":    "x&y, z",
	}
	for key, value := range want {
		if params[key] != value {
			t.Fatalf("param %s: expected %q, got %q", key, value, params[key])
		}
	}
}

func TestMapErrorPayload(t *testing.T) {
	registry := testsupport.Registry(t)
	post, _ := registry.Schema(testsupport.PostModel)

	payload := map[string][]string{
		"/body/title":                {"Title is required"},
		"body.author.email":          {"Email invalid"},
		"$.body.tags[0].slug":        {"Bad slug"},
		"request.payload.author":     {"Author missing"},
		"non_field_errors":           {"Form level error"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"":                           {"Unscoped form error", "  "},
	}

	mapped := messages.MapErrorPayload(post, registry, payload)

	wantFields := map[string][]string{
		"title":        {"Title is required"},
		"author.email": {"Email invalid"},
		"tags.slug":    {"Bad slug"},
		"author":       {"Author missing"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := messages.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
