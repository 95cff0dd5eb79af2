// Command formschema-lint checks manifests and OpenAPI documents before they
// reach a registry: unsupported x-formschema keys, unusable extension values,
// manifest errors and relations to unknown models.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	formschema "github.com/goliatone/go-formschema"
	"github.com/goliatone/go-formschema/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/schema"
)

const extensionNamespace = pkgopenapi.ExtensionKey

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint manifests and OpenAPI documents for formschema.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(run(context.Background(), paths, os.Stdout, os.Stderr))
}

func run(ctx context.Context, paths []string, stdout, stderr io.Writer) int {
	files, err := expand(paths)
	if err != nil {
		fmt.Fprintf(stderr, "lint: %v\n", err)
		return 2
	}

	var (
		violations []violation
		models     []*schema.Schema
		origin     = make(map[string]string)
	)
	for _, path := range files {
		linted, schemas, err := lintFile(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "lint %s: %v\n", path, err)
			return 2
		}
		violations = append(violations, linted...)
		for _, s := range schemas {
			origin[s.Name()] = path
		}
		models = append(models, schemas...)
	}

	registry := schema.NewRegistry()
	for _, s := range models {
		if err := registry.Register(s); err != nil {
			violations = append(violations, violation{file: origin[s.Name()], location: "model " + s.Name(), message: err.Error()})
		}
	}
	violations = append(violations, lintRelations(registry, origin)...)
	for _, cycle := range registry.Cycles() {
		fmt.Fprintf(stdout, "note: relation cycle %s\n", strings.Join(cycle, " -> "))
	}

	if len(violations) == 0 {
		return 0
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

// expand replaces directories with the manifest and document files they
// hold.
func expand(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		var matches []string
		for _, pattern := range []string{"*.yaml", "*.yml", "*.json"} {
			found, err := filepath.Glob(filepath.Join(path, pattern))
			if err != nil {
				return nil, err
			}
			matches = append(matches, found...)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

func lintFile(ctx context.Context, path string) ([]violation, []*schema.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	if !pkgopenapi.Detect(raw) {
		schemas, err := manifest.Parse(raw, path)
		if err != nil {
			return []violation{{file: path, location: "manifest", message: err.Error()}}, nil, nil
		}
		return nil, schemas, nil
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return []violation{{file: path, location: "document", message: err.Error()}}, nil, nil
	}

	var result []violation
	if spec.Components != nil {
		names := make([]string, 0, len(spec.Components.Schemas))
		for name := range spec.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ref := spec.Components.Schemas[name]
			if ref == nil || ref.Value == nil {
				continue
			}
			result = append(result, lintSchema(path, []string{"components", name}, ref.Value)...)
		}
	}
	if len(result) > 0 {
		return result, nil, nil
	}

	doc, err := schema.NewDocument(schema.SourceFromFile(path), raw)
	if err != nil {
		return nil, nil, fmt.Errorf("construct document: %w", err)
	}
	schemas, err := formschema.NewParser().Schemas(ctx, doc)
	if err != nil {
		return []violation{{file: path, location: "components", message: err.Error()}}, nil, nil
	}
	return nil, schemas, nil
}

func lintSchema(file string, path []string, value *openapi3.Schema) []violation {
	var result []violation
	if len(value.Extensions) > 0 {
		result = append(result, lintExtensions(file, path, value.Extensions)...)
	}

	if len(value.Properties) > 0 {
		keys := make([]string, 0, len(value.Properties))
		for key := range value.Properties {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			prop := value.Properties[key]
			// referenced components are linted on their own
			if prop == nil || prop.Ref != "" || prop.Value == nil {
				continue
			}
			result = append(result, lintSchema(file, appendPath(path, key), prop.Value)...)
		}
	}

	if value.Items != nil && value.Items.Ref == "" && value.Items.Value != nil {
		result = append(result, lintSchema(file, appendPath(path, "items"), value.Items.Value)...)
	}
	for i, member := range value.AllOf {
		if member == nil || member.Ref != "" || member.Value == nil {
			continue
		}
		result = append(result, lintSchema(file, appendPath(path, fmt.Sprintf("allOf[%d]", i)), member.Value)...)
	}

	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []violation {
	if len(extensions) == 0 {
		return nil
	}

	var result []violation
	sortedKeys := make([]string, 0, len(extensions))
	for key := range extensions {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	for _, key := range sortedKeys {
		value := extensions[key]
		switch {
		case key == extensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				result = append(result, violation{
					file:     file,
					location: formatLocation(path),
					message:  fmt.Sprintf("%s must be an object, found %T", extensionNamespace, value),
				})
				continue
			}
			nestedKeys := make([]string, 0, len(nested))
			for nestedKey := range nested {
				nestedKeys = append(nestedKeys, nestedKey)
			}
			sort.Strings(nestedKeys)
			for _, nestedKey := range nestedKeys {
				if err := pkgopenapi.CheckExtension(nestedKey, nested[nestedKey]); err != nil {
					result = append(result, violation{
						file:     file,
						location: formatLocation(appendPath(path, nestedKey)),
						message:  err.Error(),
					})
				}
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			result = append(result, violation{
				file:     file,
				location: formatLocation(path),
				message:  fmt.Sprintf("%s is not read, nest %q under %s", key, strings.TrimPrefix(key, extensionNamespace+"-"), extensionNamespace),
			})
		}
	}

	return result
}

// lintRelations reports every relation whose target model is missing.
func lintRelations(registry *schema.Registry, origin map[string]string) []violation {
	var result []violation
	for _, name := range registry.Names() {
		s, _ := registry.Schema(name)
		for _, field := range s.Fields() {
			if !field.IsRelation() {
				continue
			}
			if _, ok := registry.Schema(field.Relation.Target); ok {
				continue
			}
			result = append(result, violation{
				file:     origin[name],
				location: formatLocation([]string{"model " + name, field.Name}),
				message:  fmt.Sprintf("%v %q", schema.ErrUnknownTarget, field.Relation.Target),
			})
		}
	}
	return result
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
