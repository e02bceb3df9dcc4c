package assemble

import (
	"fmt"
	"strings"

	"bestest-extract/internal/document"
	"bestest-extract/internal/table"
)

// Flat maps each row to a record under the value of its Key column.
type Flat struct {
	Key string
}

func (f Flat) Assemble(p Part, log Logger) (document.Node, error) {
	t := p.Table
	out := document.NewTree()
	if t.Len() == 0 {
		return out, nil
	}
	ki, err := columnIndex("assemble flat", t, f.Key)
	if err != nil {
		return nil, err
	}
	skip := map[int]bool{ki: true}

	for i, row := range t.Rows {
		k, ok := key(row[ki])
		if !ok {
			log.Warn("%s: row %d has no %s, not assembled", t.Name, i, f.Key)
			continue
		}
		if err := merge("assemble flat", t, out, []string{k}, record(t, row, skip, "")); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DefaultIdentityFields maps identifying-information labels to record fields.
var DefaultIdentityFields = map[string]string{
	"software":     "software_name",
	"version":      "software_version",
	"release date": "software_release_date",
}

// Identity turns a two-column label/value table into one record.
type Identity struct {
	Field string
	Value string
	// Fields overrides DefaultIdentityFields.
	Fields map[string]string
}

func (id Identity) Assemble(p Part, log Logger) (document.Node, error) {
	t := p.Table
	rec := document.Record{}
	if t.Len() == 0 {
		return rec, nil
	}
	fi, err := columnIndex("assemble identity", t, orDefault(id.Field, "field"))
	if err != nil {
		return nil, err
	}
	vi, err := columnIndex("assemble identity", t, orDefault(id.Value, "value"))
	if err != nil {
		return nil, err
	}
	fields := id.Fields
	if fields == nil {
		fields = DefaultIdentityFields
	}

	for i, row := range t.Rows {
		label, ok := key(row[fi])
		if !ok {
			log.Warn("%s: row %d has no label, not assembled", t.Name, i)
			continue
		}
		name, ok := fields[strings.ToLower(label)]
		if !ok {
			name = "software_" + snake(label)
		}
		if _, dup := rec[name]; dup {
			return nil, shapeError("assemble identity", t, "label %q appears twice", label)
		}
		rec[name] = document.FromCell(row[vi])
	}
	return rec, nil
}

// Surface splits a compound "case/surface" column and nests each row under
// case -> SubKey -> surface.
type Surface struct {
	Column string
	// Sep defaults to "/".
	Sep string
	// SubKey defaults to "Surface".
	SubKey string
}

func (s Surface) Assemble(p Part, log Logger) (document.Node, error) {
	t := p.Table
	out := document.NewTree()
	if t.Len() == 0 {
		return out, nil
	}
	ci, err := columnIndex("assemble surface", t, s.Column)
	if err != nil {
		return nil, err
	}
	sep := orDefault(s.Sep, "/")
	sub := orDefault(s.SubKey, "Surface")
	skip := map[int]bool{ci: true}

	for i, row := range t.Rows {
		compound, ok := key(row[ci])
		if !ok {
			log.Warn("%s: row %d has no %s, not assembled", t.Name, i, s.Column)
			continue
		}
		caseID, surface, err := SplitCompound(compound, sep)
		if err != nil {
			return nil, shapeError("assemble surface", t, "row %d: %v", i, err)
		}
		if err := merge("assemble surface", t, out, []string{caseID, sub, surface}, record(t, row, skip, "")); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SplitCompound splits "610/South" into its case and surface parts
func SplitCompound(v, sep string) (caseID, surface string, err error) {
	parts := strings.SplitN(v, sep, 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%q has no %q separator", v, sep)
	}
	caseID, surface = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if caseID == "" || surface == "" {
		return "", "", fmt.Errorf("%q has an empty component", v)
	}
	return caseID, surface, nil
}

// Period is one column slice of a time-series table.
type Period struct {
	Case string `yaml:"case" validate:"required"`
	// Name is the sub-period key, e.g. a representative day. Empty nests the
	// series directly under the case.
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix" validate:"required"`
}

// Series groups rows by an hour or day index column, once per period:
// case -> [name ->] IndexKey -> index -> record.
type Series struct {
	Index string
	// IndexKey defaults to "hour".
	IndexKey string
	Periods  []Period
}

func (s Series) Assemble(p Part, log Logger) (document.Node, error) {
	t := p.Table
	out := document.NewTree()
	if t.Len() == 0 {
		return out, nil
	}
	ii, err := columnIndex("assemble series", t, s.Index)
	if err != nil {
		return nil, err
	}
	indexKey := orDefault(s.IndexKey, "hour")

	slices := make([]map[int]bool, len(s.Periods))
	for pi, period := range s.Periods {
		cols := t.ColumnsWithPrefix(period.Prefix)
		if len(cols) == 0 {
			return nil, shapeError("assemble series", t, "no columns with prefix %q", period.Prefix)
		}
		// skip marks every column outside this period's slice
		skip := make(map[int]bool, t.Width())
		for i, c := range t.Columns {
			skip[i] = !strings.HasPrefix(c, period.Prefix)
		}
		slices[pi] = skip
	}

	for i, row := range t.Rows {
		idx, ok := key(row[ii])
		if !ok {
			log.Warn("%s: row %d has no %s, not assembled", t.Name, i, s.Index)
			continue
		}
		for pi, period := range s.Periods {
			path := []string{period.Case}
			if period.Name != "" {
				path = append(path, period.Name)
			}
			path = append(path, indexKey, idx)
			if err := merge("assemble series", t, out, path, record(t, row, slices[pi], period.Prefix)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// WideCase is one case's column slice of a wide table.
type WideCase struct {
	Case   string `yaml:"case" validate:"required"`
	Prefix string `yaml:"prefix" validate:"required"`
}

// Wide splits a table holding several cases side by side into one narrow table per
// case, sharing the RowKey column. Each part is assembled with a Flat rule on RowKey
// and nested under its case.
type Wide struct {
	RowKey string
	Cases  []WideCase
}

func (w Wide) Split(t *table.Table) ([]Part, error) {
	if _, err := columnIndex("split wide", t, w.RowKey); err != nil {
		return nil, err
	}
	parts := make([]Part, 0, len(w.Cases))
	for _, c := range w.Cases {
		cols := t.ColumnsWithPrefix(c.Prefix)
		if len(cols) == 0 {
			return nil, shapeError("split wide", t, "no columns for case %s (prefix %q)", c.Case, c.Prefix)
		}
		prefix := c.Prefix
		narrow, err := t.Select(t.Name+"["+c.Case+"]", append([]string{w.RowKey}, cols...), func(s string) string {
			return strings.TrimPrefix(s, prefix)
		})
		if err != nil {
			return nil, shapeError("split wide", t, "%v", err)
		}
		parts = append(parts, Part{Case: c.Case, Table: narrow})
	}
	return parts, nil
}

func (w Wide) Assemble(p Part, log Logger) (document.Node, error) {
	out := document.NewTree()
	if p.Case == "" {
		return nil, shapeError("assemble wide", p.Table, "part has no case; split the table first")
	}
	inner, err := Flat{Key: w.RowKey}.Assemble(p, log)
	if err != nil {
		return nil, err
	}
	if inner.(*document.Tree).Len() == 0 {
		return out, nil
	}
	if err := out.Merge(p.Case, inner); err != nil {
		return nil, shapeError("assemble wide", p.Table, "%v", err)
	}
	return out, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func snake(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
