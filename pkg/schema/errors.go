package schema

import (
	"errors"
	"fmt"
)

var (
	ErrModelNameMissing = errors.New("schema: model name is required")
	ErrFieldNameMissing = errors.New("schema: field name is required")
	ErrDuplicateField   = errors.New("schema: duplicate field")
	ErrDuplicateModel   = errors.New("schema: duplicate model")
	ErrUnknownTarget    = errors.New("schema: unknown relation target")
	ErrInvalidType      = errors.New("schema: invalid field type")
)

// FieldError locates a declaration problem on a specific model field.
type FieldError struct {
	Model string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("%v (model %q)", e.Err, e.Model)
	}
	return fmt.Sprintf("%v (field %s.%s)", e.Err, e.Model, e.Field)
}

func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
