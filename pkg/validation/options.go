package validation

import (
	"github.com/goliatone/go-formschema/pkg/mime"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// DefaultMaxDepth bounds nested relation validation.
const DefaultMaxDepth = 32

// SchemaResolver resolves relation targets by model name. *schema.Registry
// satisfies it.
type SchemaResolver interface {
	Schema(name string) (*schema.Schema, bool)
}

// Option configures a Validator.
type Option func(*Validator)

// WithMimeRegistry sets the registry used by the fileType rule. Defaults to
// mime.Default().
func WithMimeRegistry(registry *mime.Registry) Option {
	return func(v *Validator) {
		if registry != nil {
			v.mimes = registry
		}
	}
}

// WithResolver sets the resolver used by isOneOf / areManyOf.
func WithResolver(resolver SchemaResolver) Option {
	return func(v *Validator) {
		v.resolver = resolver
	}
}

// WithMaxDepth caps nested relation recursion. Values below one keep the
// default.
func WithMaxDepth(depth int) Option {
	return func(v *Validator) {
		if depth > 0 {
			v.maxDepth = depth
		}
	}
}
