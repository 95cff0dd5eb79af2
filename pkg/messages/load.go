package messages

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned by LoadFS when no catalog file was found.
var ErrEmptyCatalog = errors.New("messages: no catalog files found")

// LoadFS merges every *.yaml / *.yml file at the root of fsys into the
// catalog. The file name without extension is the locale.
func (c *Catalog) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return errors.New("messages: nil filesystem")
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("messages: read catalog dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(entry.Name())) {
		case ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return ErrEmptyCatalog
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("messages: read %s: %w", name, err)
		}
		messages, err := Parse(data)
		if err != nil {
			return fmt.Errorf("messages: %s: %w", name, err)
		}
		locale := strings.TrimSuffix(name, path.Ext(name))
		if err := c.Add(locale, messages); err != nil {
			return err
		}
	}
	return nil
}

// Parse decodes a YAML catalog. Nested mappings flatten into dotted keys, so
//
//	rules:
//	  required: "{label} is required"
//
// yields the key "rules.required".
func Parse(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	out := make(map[string]string)
	if err := flatten("", raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch typed := value.(type) {
		case map[string]any:
			if err := flatten(full, typed, out); err != nil {
				return err
			}
		case string:
			out[full] = typed
		case nil:
			continue
		case []any:
			return fmt.Errorf("key %s: lists are not supported", full)
		default:
			out[full] = fmt.Sprint(typed)
		}
	}
	return nil
}
