package parser

import (
	"strings"
	"unicode"

	pkgopenapi "github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/schema"
)

const (
	relationshipExtensionKey = "x-relationships"

	relationshipTypeAttr   = "type"
	relationshipTargetAttr = "target"
)

var relationshipKeyLookup = map[string]string{
	"type":   relationshipTypeAttr,
	"kind":   relationshipTypeAttr,
	"target": relationshipTargetAttr,
	"model":  relationshipTargetAttr,
}

// relationFromExtensions reads relation overrides. The x-formschema
// relation key wins over x-relationships; both accept {type|kind, target}.
// A bare string under x-formschema names the target and keeps the kind
// derived from the property shape.
func relationFromExtensions(ext map[string]any, derived *schema.Relation) *schema.Relation {
	if len(ext) == 0 {
		return nil
	}
	if form, ok := ext[pkgopenapi.ExtensionKey].(map[string]any); ok {
		switch value := form["relation"].(type) {
		case string:
			kind := schema.RelationOne
			if derived != nil {
				kind = derived.Kind
			}
			if target := componentName(value); target != "" {
				return &schema.Relation{Kind: kind, Target: target}
			}
		case map[string]any:
			if rel := normaliseRelationship(value, derived); rel != nil {
				return rel
			}
		}
	}
	if raw, ok := ext[relationshipExtensionKey].(map[string]any); ok {
		return normaliseRelationship(raw, derived)
	}
	return nil
}

func normaliseRelationship(raw map[string]any, derived *schema.Relation) *schema.Relation {
	attrs := make(map[string]string, len(raw))
	for key, value := range raw {
		canonical, ok := relationshipKeyLookup[normaliseKey(key)]
		if !ok {
			continue
		}
		if str, ok := value.(string); ok && strings.TrimSpace(str) != "" {
			attrs[canonical] = str
		}
	}

	target := componentName(attrs[relationshipTargetAttr])
	if target == "" {
		if derived == nil {
			return nil
		}
		target = derived.Target
	}

	kind, ok := schema.ParseRelationKind(attrs[relationshipTypeAttr])
	if !ok {
		kind = schema.RelationOne
		if derived != nil {
			kind = derived.Kind
		}
	}
	return &schema.Relation{Kind: kind, Target: target}
}

func normaliseKey(raw string) string {
	var builder strings.Builder
	builder.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			builder.WriteRune(unicode.ToLower(r))
		}
	}
	return builder.String()
}
