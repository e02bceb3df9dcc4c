// Package schema describes where each logical table lives inside a workbook and
// holds the per-section registry of those descriptions.
package schema

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Options tunes how a region is parsed.
type Options struct {
	// HeaderRow consumes the first region row as column labels. Only used when the
	// table declares no labels.
	HeaderRow bool `yaml:"header_row"`
}

// Region locates a rectangular block: rows above SkipRows are ignored, then at most
// Rows rows are read from the Columns letter range.
type Region struct {
	Sheet    string `yaml:"sheet" validate:"required"`
	SkipRows int    `yaml:"skip_rows" validate:"gte=0"`
	Columns  string `yaml:"columns" validate:"required,colrange"`
	Rows     int    `yaml:"rows" validate:"gt=0"`
	Options  `yaml:",inline"`
}

// Span returns the 1-based first and last column numbers of the range
func (r Region) Span() (first, last int, err error) {
	return parseRange(r.Columns)
}

// Width returns the number of columns in the range
func (r Region) Width() (int, error) {
	first, last, err := r.Span()
	if err != nil {
		return 0, err
	}
	return last - first + 1, nil
}

// String renders the region as a sheet reference, e.g. Annual!B6:J50
func (r Region) String() string {
	first, last, err := r.Span()
	if err != nil {
		return fmt.Sprintf("%s!%s", r.Sheet, r.Columns)
	}
	from, _ := excelize.CoordinatesToCellName(first, r.SkipRows+1)
	to, _ := excelize.CoordinatesToCellName(last, r.SkipRows+r.Rows)
	return fmt.Sprintf("%s!%s:%s", r.Sheet, from, to)
}

func parseRange(s string) (first, last int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("column range %q is not of the form A:B", s)
	}
	if first, err = excelize.ColumnNameToNumber(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, fmt.Errorf("column range %q: %w", s, err)
	}
	if last, err = excelize.ColumnNameToNumber(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, fmt.Errorf("column range %q: %w", s, err)
	}
	if first > last {
		return 0, 0, fmt.Errorf("column range %q is reversed", s)
	}
	return first, last, nil
}
