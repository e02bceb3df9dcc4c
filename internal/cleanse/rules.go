// Package cleanse validates extracted tables column by column.
//
// Two rule kinds exist. A categorical check drops every row whose identifier is not
// in a fixed valid set. A numeric check coerces a column to numbers and nulls the
// cells that fail coercion or fall outside inclusive limits; the row survives. A rule
// whose column cannot be found is skipped with a diagnostic unless the cleanser is
// strict.
package cleanse

import (
	"fmt"
	"math"
)

// Categorical restricts a column to a fixed set of identifiers.
type Categorical struct {
	Column string   `yaml:"column" validate:"required"`
	Valid  []string `yaml:"valid" validate:"required,min=1"`
}

// Numeric coerces a column to numbers within inclusive limits.
// A nil limit is unbounded on that side.
type Numeric struct {
	Column string
	Lower  *float64
	Upper  *float64
}

// Num is a numeric check with no limits
func Num(column string) Numeric {
	return Numeric{Column: column}
}

// Between is a numeric check on [lower, upper]
func Between(column string, lower, upper float64) Numeric {
	return Numeric{Column: column, Lower: &lower, Upper: &upper}
}

// AtLeast is a numeric check on [lower, +Inf)
func AtLeast(column string, lower float64) Numeric {
	return Numeric{Column: column, Lower: &lower}
}

// Bounds returns the effective limits, defaulting to -Inf/+Inf
func (n Numeric) Bounds() (lower, upper float64) {
	lower, upper = math.Inf(-1), math.Inf(1)
	if n.Lower != nil {
		lower = *n.Lower
	}
	if n.Upper != nil {
		upper = *n.Upper
	}
	return lower, upper
}

// Contains reports whether v lies within the inclusive limits
func (n Numeric) Contains(v float64) bool {
	lower, upper := n.Bounds()
	return v >= lower && v <= upper
}

func (n Numeric) String() string {
	lower, upper := n.Bounds()
	return fmt.Sprintf("%s in [%g, %g]", n.Column, lower, upper)
}

// Rules is the per-table check list. The categorical check runs first, then the
// numeric checks in declared order on the already row-filtered table.
type Rules struct {
	Case    *Categorical `yaml:"case"`
	Numeric []Numeric    `yaml:"numeric"`
}

// Empty reports whether no check is configured
func (r Rules) Empty() bool {
	return r.Case == nil && len(r.Numeric) == 0
}

// Each applies the same limits to several columns
func Each(columns []string, check func(string) Numeric) []Numeric {
	out := make([]Numeric, 0, len(columns))
	for _, c := range columns {
		out = append(out, check(c))
	}
	return out
}
