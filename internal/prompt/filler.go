// Package prompt fills model records interactively, validating every answer
// against its field before moving on.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formschema/pkg/messages"
	"github.com/goliatone/go-formschema/pkg/mime"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

const (
	defaultMaxAttempts = 3
	skipOption         = "(skip)"
)

// Filler walks a model's fields in declaration order and asks for each one.
type Filler struct {
	driver      PromptDriver
	translator  messages.Translator
	locale      string
	mimes       *mime.Registry
	maxAttempts int
}

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithMessages localizes validation feedback.
func WithMessages(translator messages.Translator, locale string) Option {
	return func(f *Filler) {
		f.translator = translator
		f.locale = locale
	}
}

// WithMimeRegistry sets the registry used to type file answers.
func WithMimeRegistry(registry *mime.Registry) Option {
	return func(f *Filler) {
		if registry != nil {
			f.mimes = registry
		}
	}
}

// WithMaxAttempts bounds how often an invalid field is asked again.
func WithMaxAttempts(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// New constructs a Filler backed by the survey driver unless overridden.
func New(options ...Option) *Filler {
	f := &Filler{
		mimes:       mime.Default(),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver()
	}
	if f.translator == nil {
		f.translator = messages.NewCatalog()
	}
	return f
}

// Fill asks for every field of m. Answers already present in m are offered
// as defaults. An answer is kept only once its field validates.
func (f *Filler) Fill(ctx context.Context, m *model.Model) error {
	for _, field := range m.Schema().Fields() {
		if err := f.fillField(ctx, m, field); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) fillField(ctx context.Context, m *model.Model, field schema.Field) error {
	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		value, err := f.ask(ctx, m, field)
		if err != nil {
			var answerErr *answerError
			if !errors.As(err, &answerErr) {
				return err
			}
			if err := f.driver.Info(ctx, answerErr.message); err != nil {
				return err
			}
			continue
		}

		m.Set(field.Name, value)
		violation := m.Validate(field.Name)
		if len(violation) == 0 {
			return nil
		}
		for _, message := range f.feedback(m, field, violation) {
			if err := f.driver.Info(ctx, message); err != nil {
				return err
			}
		}
	}
	m.Set(field.Name, nil)
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
}

func (f *Filler) feedback(m *model.Model, field schema.Field, violation validation.Violation) []string {
	mapping := messages.Localize(violation, m.Schema().Fields(), messages.Options{
		Locale:     f.locale,
		Translator: f.translator,
	})
	return mapping.Fields[field.Name]
}

// checkAnswer validates a raw answer the way fillField will once it is
// coerced, so interactive drivers can reject it before returning.
func (f *Filler) checkAnswer(m *model.Model, field schema.Field) func(string) error {
	return func(raw string) error {
		violation := m.ValidateValue(field.Name, model.CoerceField(field, raw))
		if len(violation) == 0 {
			return nil
		}
		return errors.New(strings.Join(f.feedback(m, field, violation), "; "))
	}
}

func (f *Filler) ask(ctx context.Context, m *model.Model, field schema.Field) (any, error) {
	message := messages.Label(field)
	if field.Required {
		message += " *"
	}
	current, _ := m.Get(field.Name)
	check := f.checkAnswer(m, field)

	switch {
	case field.Type == schema.FieldTypeBoolean:
		def, _ := current.(bool)
		return f.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
	case field.Type == schema.FieldTypeEnum && len(field.Enum) > 0:
		return f.askEnum(ctx, field, message, current)
	case field.Type == schema.FieldTypeFile:
		raw, err := f.driver.Input(ctx, InputConfig{Message: message, Help: "path to the file"})
		if err != nil {
			return nil, err
		}
		return f.fileAnswer(raw)
	case field.Type == schema.FieldTypePassword:
		raw, err := f.driver.Password(ctx, InputConfig{Message: message, Validate: check})
		if err != nil {
			return nil, err
		}
		return model.CoerceField(field, raw), nil
	case field.Type == schema.FieldTypeText:
		raw, err := f.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: defaultText(current), Validate: check})
		if err != nil {
			return nil, err
		}
		return model.CoerceField(field, raw), nil
	}

	help := ""
	if field.Relation.Many() {
		help = "comma separated keys"
	}
	raw, err := f.driver.Input(ctx, InputConfig{Message: message, Default: defaultText(current), Help: help, Validate: check})
	if err != nil {
		return nil, err
	}
	return model.CoerceField(field, raw), nil
}

func (f *Filler) askEnum(ctx context.Context, field schema.Field, message string, current any) (any, error) {
	options := make([]string, 0, len(field.Enum)+1)
	if !field.Required {
		options = append(options, skipOption)
	}
	defaultIndex := 0
	for _, member := range field.Enum {
		label := fmt.Sprint(member)
		if current != nil && label == fmt.Sprint(current) {
			defaultIndex = len(options)
		}
		options = append(options, label)
	}

	idx, err := f.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: defaultIndex})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(options) || options[idx] == skipOption {
		return nil, nil
	}
	if !field.Required {
		idx--
	}
	return field.Enum[idx], nil
}

// fileAnswer turns a path into a validation.File typed through the mime
// registry.
func (f *Filler) fileAnswer(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	path := filepath.Clean(raw)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, &answerError{message: fmt.Sprintf("cannot read file %s", path)}
	}
	file := validation.File{Name: filepath.Base(path), Size: info.Size()}
	if types := f.mimes.Lookup(mime.ExtensionOf(path)); len(types) > 0 {
		file.Type = types[0]
	}
	return file, nil
}

func defaultText(current any) string {
	if current == nil {
		return ""
	}
	return fmt.Sprint(current)
}

// answerError is an answer that could not be turned into a value. The
// message is shown and the field asked again.
type answerError struct {
	message string
}

func (e *answerError) Error() string { return e.message }
