package schema

import (
	"errors"

	"bestest-extract/internal/assemble"
	"bestest-extract/internal/cleanse"
	"bestest-extract/internal/errs"
	"bestest-extract/internal/section"
)

// IdentityTableName is the identifying-information table every built-in schema has.
const IdentityTableName = "identifying_information"

// ErrNoInstructions is wrapped when a schema has no entry for a table name.
var ErrNoInstructions = errors.New("no extraction instructions")

// Table is one logical table: where it is, what its columns are called, how it is
// cleansed and how it is assembled into the result document.
type Table struct {
	Name     string        `validate:"required"`
	Region   Region
	Labels   []string      `validate:"dive,required"`
	Rules    cleanse.Rules
	Assembly assemble.Rule `validate:"required"`
}

// Schema is the ordered list of logical tables for one section type.
type Schema struct {
	Section       section.Type `validate:"required"`
	IdentityTable string       `validate:"required"`
	Tables        []Table      `validate:"required,min=1,dive"`
}

// Table returns the named table's instructions
func (s *Schema) Table(name string) (*Table, error) {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], nil
		}
	}
	return nil, errs.Processing("lookup table", name, ErrNoInstructions)
}

// Names returns the table names in declared order
func (s *Schema) Names() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}
