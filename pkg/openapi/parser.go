package openapi

import (
	"context"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ExtensionKey is the vendor extension read from component properties. It
// carries attributes OpenAPI cannot express (label, unique, primary,
// fileType, maxSize, type, relation).
const ExtensionKey = "x-formschema"

// Parser converts an OpenAPI document into model schemas, one per object
// component, in component name order.
type Parser interface {
	Schemas(ctx context.Context, doc schema.Document) ([]*schema.Schema, error)
}

// ParserOptions exposes parser toggles.
type ParserOptions struct {
	// ValidateDocument runs the OpenAPI validator before conversion.
	ValidateDocument bool

	// AllowExternalRefs lets the loader follow $refs to other documents.
	AllowExternalRefs bool

	// Components restricts conversion to the named components. Empty means
	// every object component.
	Components []string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDocumentValidation toggles OpenAPI validation of the input.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// WithExternalRefs toggles external reference resolution.
func WithExternalRefs(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowExternalRefs = enabled
	}
}

// WithComponents limits conversion to the named components.
func WithComponents(names ...string) ParserOption {
	return func(opts *ParserOptions) {
		opts.Components = append([]string(nil), names...)
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration. Implementations under internal/openapi call this helper to
// remain consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	var cfg ParserOptions
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
