package cleanse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"bestest-extract/internal/errs"
	"bestest-extract/internal/logger"
	"bestest-extract/internal/table"
)

// Logger receives the cleanser's warnings. *logger.Scoped satisfies it.
type Logger interface {
	Warn(format string, args ...interface{})
}

type globalLog struct{}

func (globalLog) Warn(format string, args ...interface{}) {
	logger.Warn(format, args...)
}

// Cleanser applies Rules to tables.
type Cleanser struct {
	// Strict turns a missing rule column into a processing error.
	Strict bool
	Log    Logger
}

// New returns a permissive cleanser logging through the global logger
func New() *Cleanser {
	return &Cleanser{Log: globalLog{}}
}

func (c *Cleanser) warn(format string, args ...interface{}) {
	if c.Log == nil {
		globalLog{}.Warn(format, args...)
		return
	}
	c.Log.Warn(format, args...)
}

// Apply runs the categorical check and then every numeric check. The input table is
// not modified.
func (c *Cleanser) Apply(t *table.Table, rules Rules) (*table.Table, []Diagnostic, error) {
	out := t.Clone()
	var diags []Diagnostic

	if rules.Case != nil {
		filtered, d, err := c.CheckCategorical(out, *rules.Case)
		if err != nil {
			return nil, diags, err
		}
		out = filtered
		diags = append(diags, d...)
	}

	for _, n := range rules.Numeric {
		d, err := c.CheckNumeric(out, n)
		if err != nil {
			return nil, diags, err
		}
		diags = append(diags, d...)
	}

	return out, diags, nil
}

// missing handles a rule whose column is absent
func (c *Cleanser) missing(t *table.Table, column string, err error) ([]Diagnostic, error) {
	var colErr *table.ColumnError
	if !errors.As(err, &colErr) {
		return nil, err
	}
	if c.Strict {
		return nil, errs.Processing("cleanse", t.Name, err)
	}
	c.warn("%s: no validation performed on column %q (%v)", t.Name, column, err)
	return []Diagnostic{{
		Table:  t.Name,
		Column: column,
		Row:    -1,
		Reason: ReasonMissingColumn,
		Action: ActionSkipped,
	}}, nil
}

// CheckCategorical drops rows whose rule column is not in the valid set and
// normalizes the surviving keys. It returns a re-indexed copy; t is not modified.
func (c *Cleanser) CheckCategorical(t *table.Table, rule Categorical) (*table.Table, []Diagnostic, error) {
	col, err := t.Index(rule.Column)
	if err != nil {
		d, err := c.missing(t, rule.Column, err)
		return t, d, err
	}

	valid := make(map[string]bool, len(rule.Valid))
	for _, v := range rule.Valid {
		valid[Normalize(v)] = true
	}

	var diags []Diagnostic
	drop := make(map[int]bool)
	for i, row := range t.Rows {
		if valid[Normalize(row[col].String())] {
			continue
		}
		drop[i] = true
		diags = append(diags, Diagnostic{
			Table:  t.Name,
			Column: rule.Column,
			Row:    i,
			Value:  row[col].String(),
			Reason: ReasonNotInSet,
			Action: ActionDropped,
		})
	}

	out := t.Filter(func(i int, _ []table.Cell) bool { return !drop[i] })
	for i, row := range out.Rows {
		out.Set(i, col, table.TextCell(Normalize(row[col].String())))
	}

	if len(drop) > 0 {
		c.warn("%s: removed %d row(s) with invalid %s: %s", t.Name, len(drop), rule.Column, describe(diags))
	}
	return out, diags, nil
}

// CheckNumeric coerces the rule column to numbers in place. Cells that are not
// numeric or fall outside the limits become null.
func (c *Cleanser) CheckNumeric(t *table.Table, rule Numeric) ([]Diagnostic, error) {
	col, err := t.Index(rule.Column)
	if err != nil {
		return c.missing(t, rule.Column, err)
	}

	var notNumeric, outOfBounds []Diagnostic
	for i, row := range t.Rows {
		cell := row[col]
		if cell.IsNull() {
			continue
		}

		v, ok := Coerce(cell)
		if !ok {
			notNumeric = append(notNumeric, Diagnostic{
				Table: t.Name, Column: rule.Column, Row: i, Value: cell.String(),
				Reason: ReasonNotNumeric, Action: ActionNulled,
			})
			t.Set(i, col, table.NullCell())
			continue
		}

		if !rule.Contains(v) {
			outOfBounds = append(outOfBounds, Diagnostic{
				Table: t.Name, Column: rule.Column, Row: i, Value: cell.String(),
				Reason: ReasonOutOfBounds, Action: ActionNulled,
			})
			t.Set(i, col, table.NullCell())
			continue
		}

		t.Set(i, col, table.NumberCell(v))
	}

	if len(notNumeric) > 0 {
		c.warn("%s: %d non-numeric value(s) in %s set to null: %s", t.Name, len(notNumeric), rule.Column, describe(notNumeric))
	}
	if len(outOfBounds) > 0 {
		lower, upper := rule.Bounds()
		c.warn("%s: %d value(s) in %s outside [%g, %g] set to null: %s", t.Name, len(outOfBounds), rule.Column, lower, upper, describe(outOfBounds))
	}

	return append(notNumeric, outOfBounds...), nil
}

// Normalize folds an identifier to its canonical comparison form: NFKC (which also
// narrows full-width characters), trimmed, and without a spurious ".0" that spreadsheet
// number formatting can add to numeric case ids.
func Normalize(s string) string {
	s = strings.TrimSpace(norm.NFKC.String(s))
	if strings.HasSuffix(s, ".0") {
		if _, err := strconv.Atoi(strings.TrimSuffix(s, ".0")); err == nil {
			s = strings.TrimSuffix(s, ".0")
		}
	}
	return s
}

// Coerce converts a cell to a finite float. Thousands separators are accepted.
func Coerce(c table.Cell) (float64, bool) {
	switch c.Kind {
	case table.Number:
		return c.Num, !math.IsNaN(c.Num) && !math.IsInf(c.Num, 0)
	case table.Text:
		s := strings.ReplaceAll(strings.TrimSpace(norm.NFKC.String(c.Text)), ",", "")
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func describe(diags []Diagnostic) string {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		parts = append(parts, fmt.Sprintf("row %d=%q", d.Row, d.Value))
	}
	return strings.Join(parts, ", ")
}
