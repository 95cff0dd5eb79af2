package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formschema/pkg/schema"
)

const manifest = "models:\n  - name: tag\n    fields:\n      - name: slug\n"

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(schema.NewLoaderOptions()).Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != manifest || doc.Format() != schema.FormatYAML {
		t.Fatalf("unexpected document %q (%s)", doc.Raw(), doc.Format())
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"schemas/models.json": &fstest.MapFile{Data: []byte(`{"models": []}`)}}
	l := New(schema.NewLoaderOptions(schema.WithFileSystem(fsys)))

	doc, err := l.Load(context.Background(), schema.SourceFromFS("schemas/models.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != schema.FormatJSON || doc.Location() != "schemas/models.json" {
		t.Fatalf("unexpected document %s at %s", doc.Format(), doc.Location())
	}

	if _, err := New(schema.LoaderOptions{}).Load(context.Background(), schema.SourceFromFS("x")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(manifest))
	}))
	defer server.Close()

	disabled := New(schema.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), schema.SourceFromURL(server.URL)); !errors.Is(err, ErrHTTPDisabled) {
		t.Fatalf("expected ErrHTTPDisabled, got %v", err)
	}

	l := New(schema.NewLoaderOptions(schema.WithHTTPFallback(0)))
	doc, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/models.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != manifest {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/missing")); !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestLoadRejectsNilAndCancelled(t *testing.T) {
	l := New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); !errors.Is(err, ErrNilSource) {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, schema.SourceFromFile("models.yaml")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
