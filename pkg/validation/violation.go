package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrInvalid is matched by every *Error.
var ErrInvalid = errors.New("validation: invalid record")

// Violation maps a field name to the first rule it failed. A nil Violation
// means the values are valid.
type Violation map[string]schema.Rule

// Fields returns the failing field names sorted alphabetically.
func (v Violation) Fields() []string {
	if len(v) == 0 {
		return nil
	}
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filter keeps only the named fields and returns nil when nothing remains.
func (v Violation) Filter(names ...string) Violation {
	if len(v) == 0 {
		return nil
	}
	var out Violation
	for _, name := range names {
		rule, ok := v[name]
		if !ok {
			continue
		}
		if out == nil {
			out = make(Violation)
		}
		out[name] = rule
	}
	return out
}

// Err converts the violation into an error for callers that prefer error
// returns. It returns nil for an empty violation.
func (v Violation) Err(model string) error {
	if len(v) == 0 {
		return nil
	}
	cloned := make(Violation, len(v))
	for name, rule := range v {
		cloned[name] = rule
	}
	return &Error{Model: model, Violation: cloned}
}

// Error carries a non-empty Violation through error returns.
type Error struct {
	Model     string
	Violation Violation
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, len(e.Violation))
	for _, name := range e.Violation.Fields() {
		parts = append(parts, name+"="+string(e.Violation[name]))
	}
	if e.Model == "" {
		return fmt.Sprintf("%v: %s", ErrInvalid, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%v %s: %s", ErrInvalid, e.Model, strings.Join(parts, ", "))
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// AsViolation extracts the Violation from err, if any.
func AsViolation(err error) (Violation, bool) {
	var verr *Error
	if errors.As(err, &verr) && verr != nil {
		return verr.Violation, true
	}
	return nil, false
}
