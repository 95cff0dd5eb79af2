package formschema

import (
	"github.com/goliatone/go-formschema/internal/loader"
	"github.com/goliatone/go-formschema/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return loader.New(schema.NewLoaderOptions(options...))
}

// NewParser constructs an OpenAPI schema parser backed by the internal
// implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return parser.New(pkgopenapi.NewParserOptions(options...))
}
