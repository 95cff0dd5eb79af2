package testsupport

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Model names used by the fixture registry.
const (
	UserModel    = "user"
	PostModel    = "post"
	TagModel     = "tag"
	ProfileModel = "profile"
)

// UserSchema declares id (primary), email (required) and age (0..130).
func UserSchema() *schema.Schema {
	return schema.MustNew(UserModel,
		schema.NewField("id").Primary(),
		schema.NewField("email").Type(schema.FieldTypeEmail).Required().Label("E-mail"),
		schema.NewField("age").Type(schema.FieldTypeInteger).Min(0).Max(130),
		schema.NewField("nickname").MinLength(3).MaxLength(20).Pattern(regexp.MustCompile(`[a-z0-9_]+`)),
		schema.NewField("profile").IsOneOf(ProfileModel),
		schema.NewField("posts").AreManyOf(PostModel),
	)
}

// PostSchema declares a post that belongs to a user and carries tags.
func PostSchema() *schema.Schema {
	return schema.MustNew(PostModel,
		schema.NewField("id").Primary(),
		schema.NewField("title").Required().MinLength(3).MaxLength(120),
		schema.NewField("status").Enum("draft", "published"),
		schema.NewField("author").IsOneOf(UserModel),
		schema.NewField("tags").AreManyOf(TagModel),
	)
}

// TagSchema declares a tag with a required slug.
func TagSchema() *schema.Schema {
	return schema.MustNew(TagModel,
		schema.NewField("id").Primary(),
		schema.NewField("slug").Required().Pattern(regexp.MustCompile(`[a-z-]+`)),
	)
}

// ProfileSchema declares an avatar upload and a homepage.
func ProfileSchema() *schema.Schema {
	return schema.MustNew(ProfileModel,
		schema.NewField("avatar").Type(schema.FieldTypeFile).FileType("image/png", "jpg").MaxSize("1MB"),
		schema.NewField("homepage").Type(schema.FieldTypeURL),
		schema.NewField("phone").Type(schema.FieldTypeTel),
	)
}

// Registry returns a checked registry holding every fixture schema.
func Registry(t testing.TB) *schema.Registry {
	t.Helper()

	registry := schema.NewRegistry()
	for _, s := range []*schema.Schema{UserSchema(), PostSchema(), TagSchema(), ProfileSchema()} {
		if err := registry.Register(s); err != nil {
			t.Fatalf("register %s: %v", s.Name(), err)
		}
	}
	if err := registry.Check(); err != nil {
		t.Fatalf("check registry: %v", err)
	}
	return registry
}

// ReadFile loads a fixture file relative to the calling test package.
func ReadFile(t testing.TB, parts ...string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(parts...))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}
