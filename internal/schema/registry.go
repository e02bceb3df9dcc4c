package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"bestest-extract/internal/errs"
	"bestest-extract/internal/section"
)

// Registry maps section types to schemas. Lookups are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	schemas  map[section.Type]*Schema
	validate *validator.Validate
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		schemas:  make(map[section.Type]*Schema),
		validate: newValidator(),
	}
}

// Default returns a registry holding the built-in schemas
func Default() *Registry {
	r := NewRegistry()
	for _, s := range Builtin() {
		if err := r.Register(s); err != nil {
			panic(fmt.Sprintf("built-in schema %s: %v", s.Section, err))
		}
	}
	return r
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("colrange", func(fl validator.FieldLevel) bool {
		_, _, err := parseRange(fl.Field().String())
		return err == nil
	})
	return v
}

// Register validates s and adds it. A section can be registered once.
func (r *Registry) Register(s *Schema) error {
	if err := r.check(s); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.schemas[s.Section]; dup {
		return errs.Configuration("register schema", string(s.Section), fmt.Errorf("section already registered"))
	}
	r.schemas[s.Section] = s
	return nil
}

func (r *Registry) check(s *Schema) error {
	subject := string(s.Section)
	if err := r.validate.Struct(s); err != nil {
		return errs.Configuration("register schema", subject, err)
	}

	seen := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		if seen[t.Name] {
			return errs.Configuration("register schema", subject, fmt.Errorf("table %q declared twice", t.Name))
		}
		seen[t.Name] = true

		width, err := t.Region.Width()
		if err != nil {
			return errs.Configuration("register schema", subject, fmt.Errorf("table %q: %w", t.Name, err))
		}
		if len(t.Labels) == 0 && !t.Region.HeaderRow {
			return errs.Configuration("register schema", subject, fmt.Errorf("table %q has no labels and no header row", t.Name))
		}
		if len(t.Labels) > 0 && len(t.Labels) != width {
			return errs.Configuration("register schema", subject,
				fmt.Errorf("table %q has %d labels for %d columns (%s)", t.Name, len(t.Labels), width, t.Region.Columns))
		}
	}
	if !seen[s.IdentityTable] {
		return errs.Configuration("register schema", subject, fmt.Errorf("identity table %q is not declared", s.IdentityTable))
	}
	return nil
}

// SchemaFor returns the schema registered for t
func (r *Registry) SchemaFor(t section.Type) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[t]
	if !ok {
		return nil, errs.Unsupported("lookup schema", string(t), fmt.Errorf("no schema registered"))
	}
	return s, nil
}

// Sections returns the registered section types, sorted
func (r *Registry) Sections() []section.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]section.Type, 0, len(r.schemas))
	for t := range r.schemas {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
