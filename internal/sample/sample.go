// Package sample writes synthetic output workbooks laid out by a schema. Every
// region is filled with values that pass the table's cleansing rules, so a sample
// workbook runs through the pipeline without diagnostics.
package sample

import (
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"bestest-extract/internal/assemble"
	"bestest-extract/internal/cleanse"
	"bestest-extract/internal/schema"
)

var surfaces = []string{"North", "East", "South", "West", "Horizontal"}

// Build lays out every table of s in a new workbook
func Build(s *schema.Schema, sw assemble.Software) (*excelize.File, error) {
	f := excelize.NewFile()
	created := map[string]bool{}

	for i := range s.Tables {
		t := &s.Tables[i]
		sheet := t.Region.Sheet
		if !created[sheet] {
			if len(created) == 0 {
				if err := f.SetSheetName("Sheet1", sheet); err != nil {
					return nil, err
				}
			} else if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
			created[sheet] = true
		}
		if err := writeTable(f, s, t, sw); err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name, err)
		}
	}
	return f, nil
}

// Write builds the sample workbook and saves it to path
func Write(path string, s *schema.Schema, sw assemble.Software) error {
	f, err := Build(s, sw)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeTable(f *excelize.File, s *schema.Schema, t *schema.Table, sw assemble.Software) error {
	first, _, err := t.Region.Span()
	if err != nil {
		return err
	}
	labels := t.Labels
	dataStart := t.Region.SkipRows + 1
	if len(labels) == 0 {
		width, _ := t.Region.Width()
		labels = make([]string, width)
		for i := range labels {
			labels[i] = fmt.Sprintf("column_%d", i+1)
		}
		if err := setRow(f, t.Region.Sheet, first, dataStart, toRow(labels)); err != nil {
			return err
		}
		dataStart++
	} else if t.Region.SkipRows > 0 {
		if err := setRow(f, t.Region.Sheet, first, t.Region.SkipRows, toRow(labels)); err != nil {
			return err
		}
	}

	var rows [][]interface{}
	if t.Name == s.IdentityTable {
		rows = [][]interface{}{
			{"Software", sw.Name},
			{"Version", sw.Version},
			{"Release Date", sw.ReleaseDate},
		}
	} else {
		rows = values(t, labels, t.Region.Rows-(dataStart-t.Region.SkipRows-1))
	}

	for i, row := range rows {
		if err := setRow(f, t.Region.Sheet, first, dataStart+i, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, col, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toRow(labels []string) []interface{} {
	out := make([]interface{}, len(labels))
	for i, l := range labels {
		out[i] = l
	}
	return out
}

// values produces up to n rows whose key column matches the table's assembly rule
func values(t *schema.Table, labels []string, n int) [][]interface{} {
	keyColumn, keys := rowKeys(t, n)
	if len(keys) < n {
		n = len(keys)
	}

	rows := make([][]interface{}, n)
	for i := 0; i < n; i++ {
		row := make([]interface{}, len(labels))
		for c, label := range labels {
			if label == keyColumn {
				row[c] = keys[i]
				continue
			}
			row[c] = cellValue(t, label, i)
		}
		rows[i] = row
	}
	return rows
}

func rowKeys(t *schema.Table, n int) (string, []interface{}) {
	var keys []interface{}
	switch rule := t.Assembly.(type) {
	case assemble.Series:
		for i := 1; i <= n; i++ {
			keys = append(keys, i)
		}
		return rule.Index, keys
	case assemble.Surface:
		sep := rule.Sep
		if sep == "" {
			sep = "/"
		}
		for i := 0; i < n; i++ {
			keys = append(keys, fmt.Sprintf("%d%s%s", 600+10*(i/len(surfaces)), sep, surfaces[i%len(surfaces)]))
		}
		return rule.Column, keys
	case assemble.Flat:
		return rule.Key, caseKeys(t, n)
	case assemble.Wide:
		return rule.RowKey, caseKeys(t, n)
	}
	return "", caseKeys(t, n)
}

func caseKeys(t *schema.Table, n int) []interface{} {
	var keys []interface{}
	if t.Rules.Case != nil {
		for _, v := range t.Rules.Case.Valid {
			keys = append(keys, v)
		}
		return keys
	}
	for i := 0; i < n; i++ {
		keys = append(keys, fmt.Sprintf("C%d", i+1))
	}
	return keys
}

// cellValue returns a value inside the numeric limits declared for label, or a
// date-like string for columns without a numeric rule
func cellValue(t *schema.Table, label string, i int) interface{} {
	rule, ok := numericRule(t, label)
	if !ok {
		return fmt.Sprintf("%02d-Jan", i%28+1)
	}
	lower, upper := rule.Bounds()
	switch {
	case !math.IsInf(lower, 0) && !math.IsInf(upper, 0):
		span := upper - lower
		return lower + span*float64(i%10+1)/11
	case !math.IsInf(lower, 0):
		return lower + 1 + float64(i)*0.5
	case !math.IsInf(upper, 0):
		return upper - 1 - float64(i)*0.5
	default:
		return 100 + float64(i)
	}
}

func numericRule(t *schema.Table, label string) (cleanse.Numeric, bool) {
	names := []string{label}
	if w, ok := t.Assembly.(assemble.Wide); ok {
		for _, c := range w.Cases {
			if strings.HasPrefix(label, c.Prefix) {
				names = append(names, strings.TrimPrefix(label, c.Prefix))
			}
		}
	}
	for _, r := range t.Rules.Numeric {
		for _, n := range names {
			if r.Column == n {
				return r, true
			}
		}
	}
	return cleanse.Numeric{}, false
}
