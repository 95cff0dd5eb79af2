package messages

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// maxPathDepth bounds how far relation targets are expanded into dotted
// paths. Relation graphs may be cyclic.
const maxPathDepth = 4

// envelopeKeys are request wrappers servers commonly put in front of the
// record fields. They are skipped when a path does not match as given.
var envelopeKeys = map[string]bool{
	"body":       true,
	"request":    true,
	"payload":    true,
	"data":       true,
	"attributes": true,
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	return dedupe(append(append([]string(nil), existing...), extras...))
}

// Merge returns the union of m and other. Messages keep their order and
// duplicates are dropped per field and at form level.
func (m ErrorMapping) Merge(other ErrorMapping) ErrorMapping {
	out := ErrorMapping{Form: MergeFormErrors(m.Form, other.Form...)}
	for _, source := range []map[string][]string{m.Fields, other.Fields} {
		for path, msgs := range source {
			if out.Fields == nil {
				out.Fields = make(map[string][]string)
			}
			out.Fields[path] = MergeFormErrors(out.Fields[path], msgs...)
		}
	}
	return out
}

// MapErrorPayload maps server error payloads keyed by JSON pointer,
// JSONPath or dotted paths ("/body/owner/email", "$.tags[0]") onto the
// dotted field paths of s. Relation fields expand into their target schema
// through resolver. Array indexes are ignored and paths that match no field
// become form-level messages.
func MapErrorPayload(s *schema.Schema, resolver validation.SchemaResolver, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]bool)
	walkFieldPaths(s, resolver, "", known, 0)

	for raw, msgs := range payload {
		msgs = dedupe(msgs)
		if len(msgs) == 0 {
			continue
		}
		path := resolvePath(pathKeys(raw), known)
		if path == "" {
			mapping.Form = append(mapping.Form, msgs...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[path] = append(mapping.Fields[path], msgs...)
	}
	mapping.Form = dedupe(mapping.Form)
	return mapping
}

// pathKeys splits a pointer, JSONPath or dotted path into field keys,
// decoding pointer escapes and dropping array indexes.
func pathKeys(raw string) []string {
	trimmed := strings.TrimLeft(strings.TrimSpace(raw), "#$./")
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '.' || r == '/' || r == '[' || r == ']'
	})

	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		keys = append(keys, strings.ReplaceAll(part, "~0", "~"))
	}
	return keys
}

// resolvePath returns the deepest known path that prefixes keys, trying the
// keys as given and then with each leading envelope key removed.
func resolvePath(keys []string, known map[string]bool) string {
	best, bestDepth := "", 0
	for start := 0; start < len(keys); start++ {
		for end := len(keys); end > start && end-start > bestDepth; end-- {
			candidate := strings.Join(keys[start:end], ".")
			if known[candidate] {
				best, bestDepth = candidate, end-start
				break
			}
		}
		if !envelopeKeys[strings.ToLower(keys[start])] {
			break
		}
	}
	return best
}

func walkFieldPaths(s *schema.Schema, resolver validation.SchemaResolver, prefix string, known map[string]bool, depth int) {
	if s == nil || depth >= maxPathDepth {
		return
	}
	for _, field := range s.Fields() {
		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}
		known[path] = true

		if !field.IsRelation() || resolver == nil {
			continue
		}
		if target, ok := resolver.Schema(field.Relation.Target); ok {
			walkFieldPaths(target, resolver, path, known, depth+1)
		}
	}
}

func dedupe(msgs []string) []string {
	var out []string
	seen := make(map[string]bool, len(msgs))
	for _, msg := range msgs {
		msg = strings.TrimSpace(msg)
		if msg == "" || seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}
	return out
}
