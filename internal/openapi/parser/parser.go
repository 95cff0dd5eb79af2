package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/schema"
)

var (
	ErrEmptyDocument    = errors.New("openapi parser: document payload is empty")
	ErrNoComponents     = errors.New("openapi parser: document does not contain component schemas")
	ErrUnknownComponent = errors.New("openapi parser: unknown component")
	ErrInvalidSchema    = errors.New("openapi parser: invalid schema")
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Schemas converts every object component of doc into a schema named after
// the component. Property order follows the document.
func (p *Parser) Schemas(ctx context.Context, doc schema.Document) ([]*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, ErrNoComponents
	}

	names, err := p.componentNames(spec.Components.Schemas)
	if err != nil {
		return nil, err
	}
	order := propertyOrder(raw)

	var out []*schema.Schema
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ref := spec.Components.Schemas[name]
		if ref == nil || !isObject(ref.Value) {
			continue
		}
		s, err := convertComponent(name, ref.Value, order[name])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, ErrNoComponents
	}
	return out, nil
}

func (p *Parser) componentNames(components openapi3.Schemas) ([]string, error) {
	if len(p.options.Components) > 0 {
		names := make([]string, 0, len(p.options.Components))
		for _, name := range p.options.Components {
			if _, ok := components[name]; !ok {
				return nil, fmt.Errorf("%w %q", ErrUnknownComponent, name)
			}
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}

	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
