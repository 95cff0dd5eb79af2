package messages

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLocale is the fallback locale of a new Catalog.
const DefaultLocale = "en"

// Catalog stores messages per locale and negotiates the best locale for a
// request. It is safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	fallback language.Tag
	tags     []language.Tag
	entries  map[language.Tag]map[string]string
	matcher  language.Matcher
	builtins bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithFallback sets the locale used when no registered locale matches.
// Invalid tags are ignored.
func WithFallback(locale string) Option {
	return func(c *Catalog) {
		if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
			c.fallback = tag
		}
	}
}

// WithoutBuiltins starts the catalog empty instead of preloading the English
// and Spanish rule messages.
func WithoutBuiltins() Option {
	return func(c *Catalog) {
		c.builtins = false
	}
}

// NewCatalog returns a catalog preloaded with the built-in messages.
func NewCatalog(options ...Option) *Catalog {
	c := &Catalog{
		fallback: language.English,
		entries:  make(map[language.Tag]map[string]string),
		builtins: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.builtins {
		for locale, entries := range builtinMessages {
			_ = c.Add(locale, entries)
		}
	}
	c.mu.Lock()
	c.rebuildLocked()
	c.mu.Unlock()
	return c
}

// Add merges entries into locale, overriding existing keys.
func (c *Catalog) Add(locale string, entries map[string]string) error {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return fmt.Errorf("messages: invalid locale %q: %w", locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.entries[tag]
	if !ok {
		bucket = make(map[string]string, len(entries))
		c.entries[tag] = bucket
	}
	for key, message := range entries {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		bucket[key] = message
	}
	c.rebuildLocked()
	return nil
}

// Locales lists the registered locales, fallback first.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.tags))
	for _, tag := range c.tags {
		if _, ok := c.entries[tag]; ok {
			out = append(out, tag.String())
		}
	}
	return out
}

// Match returns the registered locale that best serves locale, which may be
// a single tag or an Accept-Language header value.
func (c *Catalog) Match(locale string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matchLocked(locale).String()
}

// Lookup returns the raw message for key in the negotiated locale, falling
// back to the catalog fallback locale.
func (c *Catalog) Lookup(locale, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tag := c.matchLocked(locale)
	if message, ok := c.entries[tag][key]; ok {
		return message, true
	}
	message, ok := c.entries[c.fallback][key]
	return message, ok
}

// Translate implements Translator. A map[string]any argument supplies the
// {placeholder} values.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	message, ok := c.Lookup(locale, key)
	if !ok {
		return "", fmt.Errorf("%w %q for locale %q", ErrMissingMessage, key, locale)
	}
	return interpolate(message, paramsFrom(args)), nil
}

func (c *Catalog) matchLocked(locale string) language.Tag {
	if c.matcher == nil || len(c.tags) == 0 {
		return c.fallback
	}
	_, index := language.MatchStrings(c.matcher, locale)
	if index < 0 || index >= len(c.tags) {
		return c.fallback
	}
	return c.tags[index]
}

// rebuildLocked orders the supported tags with the fallback first so the
// matcher defaults to it.
func (c *Catalog) rebuildLocked() {
	tags := make([]language.Tag, 0, len(c.entries)+1)
	tags = append(tags, c.fallback)
	others := make([]language.Tag, 0, len(c.entries))
	for tag := range c.entries {
		if tag != c.fallback {
			others = append(others, tag)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	c.tags = append(tags, others...)
	c.matcher = language.NewMatcher(c.tags)
}

func paramsFrom(args []any) map[string]any {
	for _, arg := range args {
		if params, ok := arg.(map[string]any); ok {
			return params
		}
	}
	return nil
}

// interpolate replaces {name} placeholders with the matching parameter.
// Unknown placeholders are left in place.
func interpolate(message string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(message, "{") {
		return message
	}
	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(message)
}
