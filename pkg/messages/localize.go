package messages

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// Options controls message lookup for one Localize call.
type Options struct {
	// Locale is a BCP 47 tag or an Accept-Language value.
	Locale     string
	Translator Translator
	// OnMissing defaults to returning the rule name.
	OnMissing MissingTranslationHandler
}

// ErrorMapping splits messages into field-level entries keyed by dotted
// field path and form-level entries that match no field.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Localize renders one message per violated field. Field specific keys
// ("fields.<name>.<rule>") win over rule keys ("rules.<rule>"). Violations
// for names missing from fields still get a message keyed by that name.
func Localize(v validation.Violation, fields []schema.Field, opts Options) ErrorMapping {
	mapping := ErrorMapping{}
	if len(v) == 0 {
		return mapping
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	index := make(map[string]schema.Field, len(fields))
	for _, field := range fields {
		index[field.Name] = field
	}

	mapping.Fields = make(map[string][]string, len(v))
	for _, name := range v.Fields() {
		rule := v[name]
		field, ok := index[name]
		if !ok {
			field = schema.Field{Name: name}
		}
		params := Params(field, rule)
		keys := []string{
			"fields." + name + "." + string(rule),
			"rules." + string(rule),
		}
		message := translateFirst(opts.Locale, keys, params, opts.Translator, onMissing)
		mapping.Fields[name] = append(mapping.Fields[name], message)
	}
	return mapping
}

// Params returns the interpolation values for a failed rule. Every value is
// stripped of markup before it reaches a message.
func Params(field schema.Field, rule schema.Rule) map[string]any {
	params := map[string]any{
		"field": sanitize(field.Name),
		"label": sanitize(Label(field)),
		"rule":  string(rule),
	}
	if field.Min != nil {
		params["min"] = formatFloat(*field.Min)
	}
	if field.Max != nil {
		params["max"] = formatFloat(*field.Max)
	}
	if field.MinLength != nil {
		params["minLength"] = strconv.Itoa(*field.MinLength)
	}
	if field.MaxLength != nil {
		params["maxLength"] = strconv.Itoa(*field.MaxLength)
	}
	if field.Pattern != nil {
		params["pattern"] = sanitize(field.Pattern.String())
	}
	if len(field.Enum) > 0 {
		values := make([]string, 0, len(field.Enum))
		for _, value := range field.Enum {
			values = append(values, sanitize(fmt.Sprint(value)))
		}
		params["enum"] = strings.Join(values, ", ")
	}
	if len(field.FileTypes) > 0 {
		params["fileType"] = sanitize(strings.Join(field.FileTypes, ", "))
	}
	if field.MaxSize != nil {
		params["maxSize"] = sanitize(fmt.Sprint(field.MaxSize))
	}
	if field.Relation != nil {
		params["target"] = sanitize(field.Relation.Target)
	}
	return params
}

// Label returns the field label, or a title-cased form of its name
// ("first_name" becomes "First Name").
func Label(field schema.Field) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	words := strings.FieldsFunc(field.Name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func translateFirst(locale string, keys []string, params map[string]any, t Translator, onMissing MissingTranslationHandler) string {
	if t == nil {
		return onMissing(locale, keys[len(keys)-1], []any{params}, ErrMissingTranslator)
	}
	var lastErr error
	for _, key := range keys {
		message, err := t.Translate(locale, key, params)
		if err == nil && strings.TrimSpace(message) != "" {
			return message
		}
		lastErr = err
	}
	return onMissing(locale, keys[len(keys)-1], []any{params}, lastErr)
}

// sanitize strips markup and returns plain text. The strict policy escapes
// entities for HTML output; messages are text, so they are decoded again.
func sanitize(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(raw)))
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
