package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/pkg/schema"
)

var (
	// ErrInvalid wraps every structural problem found in a manifest.
	ErrInvalid = errors.New("manifest: invalid manifest")
	// ErrUnknownAttribute reports a field key outside the supported set.
	ErrUnknownAttribute = errors.New("manifest: unknown attribute")
	// ErrNoManifests is returned by LoadFS when no manifest file was found.
	ErrNoManifests = errors.New("manifest: no manifest files found")
)

// Parse decodes a YAML or JSON manifest. path only labels error messages.
func Parse(data []byte, path string) ([]*schema.Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: %s: empty document", ErrInvalid, path)
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, nodeError(path, top, ErrInvalid, "expected a mapping with a models key")
	}

	var schemas []*schema.Schema
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "version":
			continue
		case "models":
			if value.Kind != yaml.SequenceNode {
				return nil, nodeError(path, value, ErrInvalid, "models must be a list")
			}
			for _, item := range value.Content {
				s, err := parseModel(path, item)
				if err != nil {
					return nil, err
				}
				schemas = append(schemas, s)
			}
		default:
			return nil, nodeError(path, key, ErrInvalid, "unknown top-level key %q", key.Value)
		}
	}
	return schemas, nil
}

// ParseDocument parses a document fetched by a schema.Loader.
func ParseDocument(doc schema.Document) ([]*schema.Schema, error) {
	return Parse(doc.Raw(), doc.Location())
}

// LoadFS parses every *.yaml, *.yml and *.json file at the root of fsys,
// registers the models and checks their relations.
func LoadFS(fsys fs.FS) (*schema.Registry, error) {
	if fsys == nil {
		return nil, errors.New("manifest: nil filesystem")
	}

	var names []string
	for _, pattern := range []string{"*.yaml", "*.yml", "*.json"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("manifest: glob %s: %w", pattern, err)
		}
		names = append(names, matches...)
	}
	if len(names) == 0 {
		return nil, ErrNoManifests
	}
	sort.Strings(names)

	registry := schema.NewRegistry()
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("manifest: read %s: %w", name, err)
		}
		schemas, err := Parse(data, name)
		if err != nil {
			return nil, err
		}
		if err := Register(registry, schemas...); err != nil {
			return nil, fmt.Errorf("manifest: %s: %w", name, err)
		}
	}
	if err := registry.Check(); err != nil {
		return nil, err
	}
	return registry, nil
}

// Register adds schemas to registry, stopping at the first error.
func Register(registry *schema.Registry, schemas ...*schema.Schema) error {
	for _, s := range schemas {
		if err := registry.Register(s); err != nil {
			return err
		}
	}
	return nil
}

func parseModel(path string, node *yaml.Node) (*schema.Schema, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(path, node, ErrInvalid, "model must be a mapping")
	}

	var (
		name      string
		fieldNode *yaml.Node
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "name":
			name = strings.TrimSpace(value.Value)
		case "fields":
			fieldNode = value
		case "description":
			continue
		default:
			return nil, nodeError(path, key, ErrInvalid, "unknown model key %q", key.Value)
		}
	}
	if name == "" {
		return nil, nodeError(path, node, schema.ErrModelNameMissing, "model without name")
	}
	if fieldNode == nil || fieldNode.Kind != yaml.SequenceNode {
		return nil, nodeError(path, node, ErrInvalid, "model %s: fields must be a list", name)
	}

	builders := make([]*schema.FieldBuilder, 0, len(fieldNode.Content))
	for _, item := range fieldNode.Content {
		builder, err := parseField(path, item)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", name, err)
		}
		builders = append(builders, builder)
	}

	s := schema.New(name)
	if err := s.SetFields(schema.BuildFields(builders...)...); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", path, node.Line, err)
	}
	return s, nil
}

func parseField(path string, node *yaml.Node) (*schema.FieldBuilder, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(path, node, ErrInvalid, "field must be a mapping")
	}

	name := ""
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "name" {
			name = strings.TrimSpace(node.Content[i+1].Value)
		}
	}
	if name == "" {
		return nil, nodeError(path, node, schema.ErrFieldNameMissing, "field without name")
	}

	builder := schema.NewField(name)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if err := applyAttribute(path, builder, key.Value, value); err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
	}
	return builder, nil
}

// applyAttribute maps one manifest key onto the builder method of the same
// name, keeping the manifest key order.
func applyAttribute(path string, b *schema.FieldBuilder, key string, value *yaml.Node) error {
	switch key {
	case "name":
		return nil
	case "type":
		t, ok := schema.ParseFieldType(value.Value)
		if !ok {
			return nodeError(path, value, schema.ErrInvalidType, "%q", value.Value)
		}
		b.Type(t)
	case "label":
		b.Label(value.Value)
	case "required":
		flag, err := decodeBool(path, value)
		if err != nil {
			return err
		}
		if flag {
			b.Required()
		}
	case "unique":
		flag, err := decodeBool(path, value)
		if err != nil {
			return err
		}
		b.Unique(flag)
	case "primary":
		flag, err := decodeBool(path, value)
		if err != nil {
			return err
		}
		b.Primary(flag)
	case "min", "max":
		var bound float64
		if err := value.Decode(&bound); err != nil || math.IsNaN(bound) {
			return nodeError(path, value, ErrInvalid, "%s must be a number", key)
		}
		if key == "min" {
			b.Min(bound)
		} else {
			b.Max(bound)
		}
	case "minLength", "maxLength":
		var length int
		if err := value.Decode(&length); err != nil || length < 0 {
			return nodeError(path, value, ErrInvalid, "%s must be a non-negative integer", key)
		}
		if key == "minLength" {
			b.MinLength(length)
		} else {
			b.MaxLength(length)
		}
	case "pattern":
		re, err := regexp.Compile(value.Value)
		if err != nil {
			return nodeError(path, value, ErrInvalid, "pattern: %v", err)
		}
		b.Pattern(re)
	case "enum":
		var values []any
		if err := value.Decode(&values); err != nil || len(values) == 0 {
			return nodeError(path, value, ErrInvalid, "enum must be a non-empty list")
		}
		b.Enum(values...)
	case "default":
		var fallback any
		if err := value.Decode(&fallback); err != nil {
			return nodeError(path, value, ErrInvalid, "default: %v", err)
		}
		b.Default(fallback)
	case "fileType":
		types, err := decodeStrings(path, value)
		if err != nil {
			return err
		}
		b.FileType(types...)
	case "maxSize":
		var size any
		if err := value.Decode(&size); err != nil {
			return nodeError(path, value, ErrInvalid, "maxSize: %v", err)
		}
		if _, err := schema.ParseSize(size); err != nil {
			return nodeError(path, value, ErrInvalid, "%v", err)
		}
		b.MaxSize(size)
	case "isOneOf":
		b.IsOneOf(value.Value)
	case "areManyOf":
		b.AreManyOf(value.Value)
	case "relation":
		return applyRelation(path, b, value)
	default:
		return nodeError(path, value, ErrUnknownAttribute, "%q", key)
	}
	return nil
}

// applyRelation accepts the long form {kind: hasMany, target: post}.
func applyRelation(path string, b *schema.FieldBuilder, value *yaml.Node) error {
	var spec struct {
		Kind   string `yaml:"kind"`
		Target string `yaml:"target"`
	}
	if err := value.Decode(&spec); err != nil {
		return nodeError(path, value, ErrInvalid, "relation: %v", err)
	}
	kind, ok := schema.ParseRelationKind(spec.Kind)
	if !ok || strings.TrimSpace(spec.Target) == "" {
		return nodeError(path, value, ErrInvalid, "relation needs a known kind and a target")
	}
	if kind == schema.RelationMany {
		b.AreManyOf(spec.Target)
	} else {
		b.IsOneOf(spec.Target)
	}
	return nil
}

func decodeBool(path string, value *yaml.Node) (bool, error) {
	var flag bool
	if err := value.Decode(&flag); err != nil {
		return false, nodeError(path, value, ErrInvalid, "expected a boolean, got %q", value.Value)
	}
	return flag, nil
}

func decodeStrings(path string, value *yaml.Node) ([]string, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		return []string{value.Value}, nil
	case yaml.SequenceNode:
		var out []string
		if err := value.Decode(&out); err != nil {
			return nil, nodeError(path, value, ErrInvalid, "expected a list of strings")
		}
		return out, nil
	default:
		return nil, nodeError(path, value, ErrInvalid, "expected a string or a list of strings")
	}
}

func nodeError(path string, node *yaml.Node, kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s:%d:%d: %s", kind, path, node.Line, node.Column, fmt.Sprintf(format, args...))
}
