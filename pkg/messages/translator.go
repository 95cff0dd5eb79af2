package messages

import "errors"

var (
	// ErrMissingTranslator is passed to MissingTranslationHandler when no
	// translator was configured.
	ErrMissingTranslator = errors.New("messages: translator not configured")
	// ErrMissingMessage reports a key without a message in any matched locale.
	ErrMissingMessage = errors.New("messages: missing message")
)

// Translator resolves a message key for a locale. Implementations receive
// the interpolation parameters as a single map[string]any argument.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler produces the text used when a key cannot be
// translated. params carries the interpolation map and err the cause.
type MissingTranslationHandler func(locale, key string, params []any, err error) string

func missingTranslationDefault(_ string, key string, params []any, _ error) string {
	for _, param := range params {
		values, ok := param.(map[string]any)
		if !ok {
			continue
		}
		if rule, ok := values["rule"].(string); ok && rule != "" {
			return rule
		}
	}
	return key
}
