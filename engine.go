// Package formschema bundles the schema registry, validator, mime registry and
// message catalog behind a single entry point. Callers that prefer explicit
// wiring can use the pkg/ packages directly.
package formschema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formschema/pkg/manifest"
	"github.com/goliatone/go-formschema/pkg/messages"
	"github.com/goliatone/go-formschema/pkg/mime"
	"github.com/goliatone/go-formschema/pkg/model"
	pkgopenapi "github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// ErrUnknownModel is returned when a model name is not registered.
var ErrUnknownModel = errors.New("formschema: unknown model")

// Option customises the engine configuration.
type Option func(*Engine)

// WithRegistry starts the engine from an existing registry.
func WithRegistry(registry *schema.Registry) Option {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithMimeRegistry overrides the registry used by fileType rules.
func WithMimeRegistry(registry *mime.Registry) Option {
	return func(e *Engine) {
		e.mimes = registry
	}
}

// WithMaxDepth caps nested relation validation.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// WithCatalog injects the message catalog used by Localize.
func WithCatalog(catalog *messages.Catalog) Option {
	return func(e *Engine) {
		e.catalog = catalog
	}
}

// WithLoader injects a custom document loader for LoadOpenAPI.
func WithLoader(loader schema.Loader) Option {
	return func(e *Engine) {
		e.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser for LoadOpenAPI.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(e *Engine) {
		e.parser = parser
	}
}

// Engine owns one registry and validates records of every model in it.
// Load every schema before the first validation; the registry is not
// synchronised between writes and reads.
type Engine struct {
	registry  *schema.Registry
	mimes     *mime.Registry
	catalog   *messages.Catalog
	loader    schema.Loader
	parser    pkgopenapi.Parser
	maxDepth  int
	validator *validation.Validator
}

// New constructs an Engine applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.applyDefaults()
	return e
}

func (e *Engine) applyDefaults() {
	if e.registry == nil {
		e.registry = schema.NewRegistry()
	}
	if e.mimes == nil {
		e.mimes = mime.Default()
	}
	if e.catalog == nil {
		e.catalog = messages.NewCatalog()
	}
	if e.loader == nil {
		e.loader = NewLoader()
	}
	if e.parser == nil {
		e.parser = NewParser()
	}
	e.validator = validation.New(
		validation.WithResolver(e.registry),
		validation.WithMimeRegistry(e.mimes),
		validation.WithMaxDepth(e.maxDepth),
	)
}

// Register adds schemas and checks that every relation target resolves.
// The batch is checked against a staging copy first; on failure nothing is
// committed and the call can be retried with the missing targets included.
func (e *Engine) Register(schemas ...*schema.Schema) error {
	staging := schema.NewRegistry()
	for _, name := range e.registry.Names() {
		s, _ := e.registry.Schema(name)
		staging.MustRegister(s)
	}
	if err := manifest.Register(staging, schemas...); err != nil {
		return fmt.Errorf("formschema: register: %w", err)
	}
	if err := staging.Check(); err != nil {
		return err
	}
	return manifest.Register(e.registry, schemas...)
}

// LoadManifest registers every model declared by the manifests at the root
// of fsys.
func (e *Engine) LoadManifest(fsys fs.FS) error {
	loaded, err := manifest.LoadFS(fsys)
	if err != nil {
		return err
	}
	schemas := make([]*schema.Schema, 0, loaded.Len())
	for _, name := range loaded.Names() {
		s, _ := loaded.Schema(name)
		schemas = append(schemas, s)
	}
	return e.Register(schemas...)
}

// LoadOpenAPI registers the object components of the OpenAPI document
// behind src.
func (e *Engine) LoadOpenAPI(ctx context.Context, src schema.Source) error {
	if ctx == nil {
		return errors.New("formschema: context is required")
	}
	schemas, err := pkgopenapi.NewAdapter(e.loader, e.parser).Load(ctx, src)
	if err != nil {
		return err
	}
	return e.Register(schemas...)
}

// Schema looks up a registered schema.
func (e *Engine) Schema(name string) (*schema.Schema, error) {
	s, ok := e.registry.Schema(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownModel, name)
	}
	return s, nil
}

// NewModel returns an empty record bound to the named schema.
func (e *Engine) NewModel(name string) (*model.Model, error) {
	s, err := e.Schema(name)
	if err != nil {
		return nil, err
	}
	return model.New(s, e.validator), nil
}

// Validate checks values against the named model. The error reports only
// lookup failures; an invalid record yields a non-empty Violation.
func (e *Engine) Validate(name string, values map[string]any) (validation.Violation, error) {
	s, err := e.Schema(name)
	if err != nil {
		return nil, err
	}
	return e.validator.ValidateSchema(values, s), nil
}

// Localize renders the messages for a violation of the named model.
func (e *Engine) Localize(name string, v validation.Violation, locale string) (messages.ErrorMapping, error) {
	s, err := e.Schema(name)
	if err != nil {
		return messages.ErrorMapping{}, err
	}
	return messages.Localize(v, s.Fields(), messages.Options{
		Locale:     locale,
		Translator: e.catalog,
	}), nil
}

// MapErrorPayload places server-side errors for the named model onto its
// dotted field paths, expanding relations through the engine's registry.
func (e *Engine) MapErrorPayload(name string, payload map[string][]string) (messages.ErrorMapping, error) {
	s, err := e.Schema(name)
	if err != nil {
		return messages.ErrorMapping{}, err
	}
	return messages.MapErrorPayload(s, e.registry, payload), nil
}

// Registry exposes the engine's registry.
func (e *Engine) Registry() *schema.Registry { return e.registry }

// Validator exposes the engine's validator.
func (e *Engine) Validator() *validation.Validator { return e.validator }

// MimeRegistry exposes the registry used by fileType rules.
func (e *Engine) MimeRegistry() *mime.Registry { return e.mimes }

// Messages exposes the message catalog.
func (e *Engine) Messages() *messages.Catalog { return e.catalog }
