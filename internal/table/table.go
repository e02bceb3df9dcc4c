// Package table holds the rectangular cell blocks read from a workbook region.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes the value stored in a Cell.
type Kind uint8

const (
	Null Kind = iota
	Text
	Number
)

// Cell is one table value: null, a display string, or a coerced number.
type Cell struct {
	Kind Kind
	Text string
	Num  float64
}

// TextCell returns a text cell, or a null cell for blank input
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{Kind: Null}
	}
	return Cell{Kind: Text, Text: s}
}

// NumberCell returns a numeric cell
func NumberCell(f float64) Cell {
	return Cell{Kind: Number, Num: f}
}

// NullCell returns the null marker
func NullCell() Cell {
	return Cell{Kind: Null}
}

// IsNull reports whether the cell holds no value
func (c Cell) IsNull() bool {
	return c.Kind == Null
}

// String renders the cell the way it would appear in a diagnostic
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Text
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Table is a named block of rows with labelled columns.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]Cell
}

// New creates an empty table with the given column labels
func New(name string, columns []string) *Table {
	return &Table{
		Name:    name,
		Columns: append([]string(nil), columns...),
		Rows:    make([][]Cell, 0),
	}
}

// ColumnError reports a column reference that does not exist in a table.
type ColumnError struct {
	Table  string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("table %q has no column %q", e.Table, e.Column)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.Columns)
}

// Index returns the position of column name
func (t *Table) Index(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return -1, &ColumnError{Table: t.Name, Column: name}
}

// Append adds a row, padding or truncating it to the table width
func (t *Table) Append(row []Cell) {
	out := make([]Cell, len(t.Columns))
	copy(out, row)
	t.Rows = append(t.Rows, out)
}

// Cell returns the value at row i of column name
func (t *Table) Cell(i int, name string) (Cell, error) {
	idx, err := t.Index(name)
	if err != nil {
		return Cell{}, err
	}
	return t.Rows[i][idx], nil
}

// Set replaces the value at row i, column index col
func (t *Table) Set(i, col int, c Cell) {
	t.Rows[i][col] = c
}

// Filter returns a copy holding only the rows for which keep is true.
// Rows are re-indexed from zero.
func (t *Table) Filter(keep func(i int, row []Cell) bool) *Table {
	out := New(t.Name, t.Columns)
	for i, row := range t.Rows {
		if keep(i, row) {
			out.Append(row)
		}
	}
	return out
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	return t.Filter(func(int, []Cell) bool { return true })
}

// Select returns a new table with the named columns in the given order.
// rename, when non-nil, maps each selected label to its label in the new table.
func (t *Table) Select(name string, columns []string, rename func(string) string) (*Table, error) {
	idx := make([]int, len(columns))
	labels := make([]string, len(columns))
	for i, c := range columns {
		j, err := t.Index(c)
		if err != nil {
			return nil, err
		}
		idx[i] = j
		labels[i] = c
		if rename != nil {
			labels[i] = rename(c)
		}
	}

	out := New(name, labels)
	for _, row := range t.Rows {
		sel := make([]Cell, len(idx))
		for i, j := range idx {
			sel[i] = row[j]
		}
		out.Append(sel)
	}
	return out, nil
}

// ColumnsWithPrefix returns the labels that start with prefix, in table order
func (t *Table) ColumnsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range t.Columns {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
