package openapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrNotOpenAPI is returned when a document does not look like OpenAPI.
var ErrNotOpenAPI = errors.New("openapi: document is not an OpenAPI description")

// Adapter wraps the load and parse stages behind a single call.
type Adapter struct {
	loader schema.Loader
	parser Parser
}

// NewAdapter constructs an adapter with the supplied loader and parser.
func NewAdapter(loader schema.Loader, parser Parser) *Adapter {
	return &Adapter{
		loader: loader,
		parser: parser,
	}
}

// Load fetches src and converts its components into schemas.
func (a *Adapter) Load(ctx context.Context, src schema.Source) ([]*schema.Schema, error) {
	if a == nil || a.loader == nil {
		return nil, errors.New("openapi adapter: loader is nil")
	}
	if a.parser == nil {
		return nil, errors.New("openapi adapter: parser is nil")
	}

	doc, err := a.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	if !Detect(doc.Raw()) {
		return nil, fmt.Errorf("%w: %s", ErrNotOpenAPI, doc.Location())
	}
	return a.parser.Schemas(ctx, doc)
}

// LoadInto registers the converted schemas in registry and checks that every
// relation target resolves.
func (a *Adapter) LoadInto(ctx context.Context, registry *schema.Registry, src schema.Source) error {
	schemas, err := a.Load(ctx, src)
	if err != nil {
		return err
	}
	for _, s := range schemas {
		if err := registry.Register(s); err != nil {
			return err
		}
	}
	return registry.Check()
}

// Detect reports whether the raw payload appears to be OpenAPI.
func Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		if !gjson.ValidBytes(trimmed) {
			return false
		}
		return gjson.GetBytes(trimmed, "openapi").Exists() || gjson.GetBytes(trimmed, "swagger").Exists()
	}
	for _, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "openapi:") || strings.HasPrefix(line, "swagger:") {
			return true
		}
	}
	return false
}
