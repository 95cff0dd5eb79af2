package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
)

var (
	// ErrUnsupportedExtension reports a key the parser does not read.
	ErrUnsupportedExtension = errors.New("openapi: unsupported extension key")
	// ErrInvalidExtension reports a supported key with an unusable value.
	ErrInvalidExtension = errors.New("openapi: invalid extension value")
)

var extensionCheckers = map[string]func(any) error{
	"type":     checkTypeExtension,
	"label":    checkStringExtension,
	"unique":   checkBoolExtension,
	"primary":  checkBoolExtension,
	"fileType": checkFileTypeExtension,
	"maxSize":  checkSizeExtension,
	"relation": checkRelationExtension,
}

// ExtensionKeys lists the keys read from the x-formschema extension.
func ExtensionKeys() []string {
	keys := make([]string, 0, len(extensionCheckers))
	for key := range extensionCheckers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CheckExtension validates one x-formschema entry the way the parser reads
// it.
func CheckExtension(key string, value any) error {
	check, ok := extensionCheckers[key]
	if !ok {
		return fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedExtension, key, strings.Join(ExtensionKeys(), ", "))
	}
	if err := check(value); err != nil {
		return fmt.Errorf("%w for %q: %v", ErrInvalidExtension, key, err)
	}
	return nil
}

func checkTypeExtension(value any) error {
	raw, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", value)
	}
	if _, ok := schema.ParseFieldType(raw); !ok {
		return fmt.Errorf("unknown field type %q", raw)
	}
	return nil
}

func checkStringExtension(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected a string, got %T", value)
	}
	return nil
}

func checkBoolExtension(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected a boolean, got %T", value)
	}
	return nil
}

func checkFileTypeExtension(value any) error {
	switch v := value.(type) {
	case string:
		return nil
	case []any:
		for _, entry := range v {
			if _, ok := entry.(string); !ok {
				return fmt.Errorf("expected strings, found %T", entry)
			}
		}
		return nil
	}
	return fmt.Errorf("expected a string or a list of strings, got %T", value)
}

func checkSizeExtension(value any) error {
	_, err := schema.ParseSize(value)
	return err
}

func checkRelationExtension(value any) error {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return errors.New("empty relation target")
		}
		return nil
	case map[string]any:
		for _, key := range []string{"kind", "type"} {
			if raw, ok := v[key].(string); ok {
				if _, known := schema.ParseRelationKind(raw); !known {
					return fmt.Errorf("unknown relation kind %q", raw)
				}
			}
		}
		target, _ := v["target"].(string)
		if strings.TrimSpace(target) == "" {
			return errors.New("relation target is required")
		}
		return nil
	}
	return fmt.Errorf("expected a string or an object, got %T", value)
}
