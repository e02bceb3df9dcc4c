// Package extract reads declared regions out of a workbook into tables.
package extract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"bestest-extract/internal/errs"
	"bestest-extract/internal/schema"
	"bestest-extract/internal/table"
	"bestest-extract/internal/workbook"
)

// Extractor reads regions from one open workbook. It is not safe for concurrent use.
type Extractor struct {
	ref *workbook.Reference
	f   *excelize.File
}

// Open opens the referenced workbook
func Open(ref *workbook.Reference) (*Extractor, error) {
	f, err := excelize.OpenFile(ref.Path())
	if err != nil {
		return nil, errs.Unsupported("open workbook", ref.Path(), err)
	}
	return &Extractor{ref: ref, f: f}, nil
}

// Close releases the workbook
func (e *Extractor) Close() error {
	return e.f.Close()
}

// Sheets lists the workbook's sheet names
func (e *Extractor) Sheets() []string {
	return e.f.GetSheetList()
}

// ExtractTable extracts the named table of s
func (e *Extractor) ExtractTable(s *schema.Schema, name string) (*table.Table, error) {
	t, err := s.Table(name)
	if err != nil {
		return nil, err
	}
	return e.Extract(t.Name, t.Region, t.Labels)
}

// Extract reads region as display values. The result never has more rows than the
// region declares and always has exactly its column width; rows whose cells are all
// blank are dropped.
func (e *Extractor) Extract(name string, region schema.Region, labels []string) (*table.Table, error) {
	first, last, err := region.Span()
	if err != nil {
		return nil, errs.Processing("extract", name, err)
	}
	width := last - first + 1

	if idx, err := e.f.GetSheetIndex(region.Sheet); err != nil || idx < 0 {
		return nil, errs.Processing("extract", name, fmt.Errorf("sheet %q not found in %s", region.Sheet, e.ref.Name()))
	}

	rows, err := e.f.Rows(region.Sheet)
	if err != nil {
		return nil, errs.Processing("extract", name, err)
	}
	defer rows.Close()

	var out *table.Table
	if len(labels) > 0 {
		if len(labels) != width {
			return nil, errs.Processing("extract", name,
				fmt.Errorf("%d labels for %d columns in %s", len(labels), width, region))
		}
		out = table.New(name, labels)
	} else if !region.HeaderRow {
		return nil, errs.Processing("extract", name, fmt.Errorf("no column labels for %s", region))
	}

	rowNum := 0
	read := 0
	for read < region.Rows && rows.Next() {
		rowNum++
		if rowNum <= region.SkipRows {
			continue
		}
		read++

		cols, err := rows.Columns()
		if err != nil {
			return nil, errs.Processing("extract", name, fmt.Errorf("row %d: %w", rowNum, err))
		}
		values := slice(cols, first, width)

		if out == nil {
			out = table.New(name, headerLabels(values))
			continue
		}
		if blank(values) {
			continue
		}
		row := make([]table.Cell, width)
		for i, v := range values {
			row[i] = table.TextCell(strings.TrimSpace(v))
		}
		out.Append(row)
	}
	if err := rows.Error(); err != nil {
		return nil, errs.Processing("extract", name, err)
	}
	if out == nil {
		return nil, errs.Processing("extract", name, fmt.Errorf("header row of %s is beyond the end of the sheet", region))
	}
	return out, nil
}

// slice returns width values starting at the 1-based column first, padding short rows
func slice(cols []string, first, width int) []string {
	out := make([]string, width)
	for i := 0; i < width; i++ {
		if j := first - 1 + i; j < len(cols) {
			out[i] = cols[j]
		}
	}
	return out
}

func blank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func headerLabels(values []string) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		l := strings.ToLower(strings.Join(strings.Fields(v), "_"))
		if l == "" {
			l = fmt.Sprintf("column_%d", i+1)
		}
		labels[i] = l
	}
	return labels
}
