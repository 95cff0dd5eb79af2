package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunAcceptsValidSources(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"../../testdata/manifests",
		"../../internal/openapi/testdata/blog.yaml",
	}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "note: relation cycle") {
		t.Fatalf("expected the user/post cycle to be noted, got %q", stdout.String())
	}
}

func TestRunReportsViolations(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"testdata/bad"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}

	want := []string{
		`testdata/bad/api.yaml: components > Order > id > primary -> openapi: invalid extension value for "primary": expected a boolean, got string`,
		`testdata/bad/api.yaml: components > Order > items > items > sku > widget -> openapi: unsupported extension key "widget" (supported: fileType, label, maxSize, primary, relation, type, unique)`,
		`testdata/bad/api.yaml: components > Order > note -> x-formschema-label is not read, nest "label" under x-formschema`,
		`testdata/bad/shop.yaml: model cart > owner -> schema: unknown relation target "customer"`,
	}
	got := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestRunReportsManifestErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"testdata/bad/api.yaml", "testdata/missing.yaml"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected exit 2 for a missing path, got %d", code)
	}

	stderr.Reset()
	code = run(context.Background(), []string{"testdata/broken.yaml"}, &stdout, &stderr)
	if code != 1 || !strings.Contains(stderr.String(), "testdata/broken.yaml: manifest -> schema: invalid field type") {
		t.Fatalf("expected a manifest violation, got %d %q", code, stderr.String())
	}
}
