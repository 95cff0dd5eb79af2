package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Registry indexes schemas by model name. Relation fields name their target
// model and validators resolve it here. Register every schema before the
// first validation call; reads are not synchronised with writes.
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register adds s under its model name.
func (r *Registry) Register(s *Schema) error {
	if s == nil || s.Name() == "" {
		return ErrModelNameMissing
	}
	if r.schemas == nil {
		r.schemas = make(map[string]*Schema)
	}
	if _, exists := r.schemas[s.Name()]; exists {
		return &FieldError{Model: s.Name(), Err: ErrDuplicateModel}
	}
	r.schemas[s.Name()] = s
	log.Debugf("registered schema %s with %d fields", s.Name(), len(s.fields))
	return nil
}

// MustRegister registers every schema and panics on the first error.
func (r *Registry) MustRegister(schemas ...*Schema) *Registry {
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Schema looks up a schema by model name.
func (r *Registry) Schema(name string) (*Schema, bool) {
	if r == nil || r.schemas == nil {
		return nil, false
	}
	s, ok := r.schemas[strings.TrimSpace(name)]
	return s, ok
}

// Names returns the registered model names sorted alphabetically.
func (r *Registry) Names() []string {
	if r == nil || len(r.schemas) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.schemas)
}

// Check verifies that every relation targets a registered model. Run it once
// after registration so misconfigured relations fail at startup rather than
// as relation violations.
func (r *Registry) Check() error {
	for _, name := range r.Names() {
		s := r.schemas[name]
		for _, field := range s.fields {
			if field.Relation == nil {
				continue
			}
			if field.Relation.Target == "" {
				return &FieldError{Model: name, Field: field.Name, Err: ErrUnknownTarget}
			}
			if _, ok := r.schemas[field.Relation.Target]; !ok {
				return &FieldError{
					Model: name,
					Field: field.Name,
					Err:   fmt.Errorf("%w %q", ErrUnknownTarget, field.Relation.Target),
				}
			}
		}
	}
	for _, cycle := range r.Cycles() {
		log.Debugf("relation cycle %s", strings.Join(cycle, " -> "))
	}
	return nil
}

// Cycles reports relation cycles between registered models. Each cycle lists
// model names starting and ending with the same model. Cycles are legal; nested
// validation bounds its recursion depth instead.
func (r *Registry) Cycles() [][]string {
	names := r.Names()
	if len(names) == 0 {
		return nil
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(names))
	var (
		stack  []string
		cycles [][]string
		visit  func(name string)
	)

	visit = func(name string) {
		state[name] = visiting
		stack = append(stack, name)
		for _, target := range r.targets(name) {
			switch state[target] {
			case unvisited:
				visit(target)
			case visiting:
				start := indexOf(stack, target)
				cycle := append([]string(nil), stack[start:]...)
				cycles = append(cycles, append(cycle, target))
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
	}

	for _, name := range names {
		if state[name] == unvisited {
			visit(name)
		}
	}
	return cycles
}

func (r *Registry) targets(name string) []string {
	s, ok := r.schemas[name]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, field := range s.fields {
		if !field.IsRelation() {
			continue
		}
		target := field.Relation.Target
		if _, ok := r.schemas[target]; !ok {
			continue
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	sort.Strings(out)
	return out
}

func indexOf(values []string, target string) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}
