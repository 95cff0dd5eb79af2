package mime

import (
	"sort"
	"strings"
	"sync"
)

// OctetStream is the generic MIME type browsers send for unknown content.
const OctetStream = "application/octet-stream"

// Registry maps lower-case extensions (without the leading dot) to MIME
// strings. An extension may map to several MIME strings, such as legacy and
// modern spellings.
type Registry struct {
	mu         sync.RWMutex
	extensions map[string][]string
	known      map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extensions: make(map[string][]string),
		known:      make(map[string]struct{}),
	}
}

// Default returns a new registry loaded with the built-in table.
func Default() *Registry {
	r := NewRegistry()
	for _, entry := range builtin {
		r.Add(entry.ext, entry.types...)
	}
	return r
}

// Add registers mimes for ext. Duplicates are ignored and insertion order is
// preserved.
func (r *Registry) Add(ext string, mimes ...string) {
	key := normalizeExtension(ext)
	if key == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.extensions[key]
	for _, raw := range mimes {
		value := normalizeMime(raw)
		if value == "" || contains(current, value) {
			continue
		}
		current = append(current, value)
		r.known[value] = struct{}{}
	}
	if len(current) > 0 {
		r.extensions[key] = current
	}
}

// Lookup returns every MIME string registered for ext. A leading dot and case
// are ignored. The result is a copy; nil means unknown.
func (r *Registry) Lookup(ext string) []string {
	key := normalizeExtension(ext)
	if key == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	values := r.extensions[key]
	if len(values) == 0 {
		return nil
	}
	return append([]string(nil), values...)
}

// IsValid reports whether mime is registered for any extension. The test is
// case-insensitive.
func (r *Registry) IsValid(mime string) bool {
	value := normalizeMime(mime)
	if value == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.known[value]
	return ok
}

// Extensions returns the sorted extensions registered for mime.
func (r *Registry) Extensions(mime string) []string {
	value := normalizeMime(mime)
	if value == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for ext, types := range r.extensions {
		if contains(types, value) {
			out = append(out, ext)
		}
	}
	sort.Strings(out)
	return out
}

// Resolve expands a mixed list of MIME types and extensions into MIME types.
// Entries containing a slash are MIME types; anything else is looked up as an
// extension. Unknown extensions are dropped.
func (r *Registry) Resolve(entries ...string) []string {
	var out []string
	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		if strings.Contains(trimmed, "/") {
			if value := normalizeMime(trimmed); !contains(out, value) {
				out = append(out, value)
			}
			continue
		}
		for _, value := range r.Lookup(trimmed) {
			if !contains(out, value) {
				out = append(out, value)
			}
		}
	}
	return out
}

// ExtensionOf returns the normalised extension of a file name, or "".
func ExtensionOf(name string) string {
	trimmed := strings.TrimSpace(name)
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	if slash := strings.LastIndexAny(trimmed, `/\`); slash > idx {
		return ""
	}
	return normalizeExtension(trimmed[idx+1:])
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// normalizeMime lower-cases and strips parameters ("text/plain; charset=utf-8").
func normalizeMime(value string) string {
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = value[:idx]
	}
	return strings.ToLower(strings.TrimSpace(value))
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
