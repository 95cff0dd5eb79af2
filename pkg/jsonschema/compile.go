package jsonschema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// Compile exports s and loads the result into a qri-io/jsonschema validator.
func Compile(s *schema.Schema, resolver validation.SchemaResolver) (*jsonschema.Schema, error) {
	data, err := Marshal(s, resolver)
	if err != nil {
		return nil, err
	}
	compiled := &jsonschema.Schema{}
	if err := json.Unmarshal(data, compiled); err != nil {
		return nil, fmt.Errorf("jsonschema: compiling %s schema failed: %w", s.Name(), err)
	}
	return compiled, nil
}

// Marshal returns the exported document as indented JSON.
func Marshal(s *schema.Schema, resolver validation.SchemaResolver) ([]byte, error) {
	doc, err := Export(s, resolver)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonschema: encode %s: %w", s.Name(), err)
	}
	return data, nil
}

// ValidateBytes checks a JSON record against a compiled schema and returns
// the failing instance paths with their messages.
func ValidateBytes(ctx context.Context, compiled *jsonschema.Schema, record []byte) (map[string]string, error) {
	errs, err := compiled.ValidateBytes(ctx, record)
	if err != nil {
		return nil, err
	}
	if len(errs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(errs))
	for _, keyErr := range errs {
		path := keyErr.PropertyPath
		if path == "" {
			path = "/"
		}
		if _, exists := out[path]; !exists {
			out[path] = keyErr.Message
		}
	}
	return out, nil
}
