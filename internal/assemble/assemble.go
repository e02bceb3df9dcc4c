// Package assemble turns cleansed tables into result-document contributions.
//
// Each logical table carries one Rule. A Rule that also implements Splitter is given
// the raw table first so it can be cut into per-case parts; every part is then
// cleansed and assembled on its own and the contributions are merged.
package assemble

import (
	"fmt"
	"strconv"
	"strings"

	"bestest-extract/internal/document"
	"bestest-extract/internal/errs"
	"bestest-extract/internal/table"
)

// Logger receives assembly warnings. *logger.Scoped satisfies it.
type Logger interface {
	Warn(format string, args ...interface{})
}

// Part is a table, or one per-case slice of a wide table.
type Part struct {
	// Case is set only for parts produced by a Splitter.
	Case  string
	Table *table.Table
}

// Rule maps a cleansed part into the document node stored under its table name.
// An empty table yields an empty contribution.
type Rule interface {
	Assemble(p Part, log Logger) (document.Node, error)
}

// Splitter is implemented by rules whose raw table encodes several cases side by side.
type Splitter interface {
	Split(t *table.Table) ([]Part, error)
}

// PartsOf returns the parts rule wants cleansed: the split parts for a Splitter,
// otherwise the table itself.
func PartsOf(rule Rule, t *table.Table) ([]Part, error) {
	if s, ok := rule.(Splitter); ok {
		return s.Split(t)
	}
	return []Part{{Table: t}}, nil
}

// record copies every column except skip into a flat record. strip is removed from
// the front of each label.
func record(t *table.Table, row []table.Cell, skip map[int]bool, strip string) document.Record {
	rec := make(document.Record, len(row))
	for i, c := range row {
		if skip[i] {
			continue
		}
		rec[strings.TrimPrefix(t.Columns[i], strip)] = document.FromCell(c)
	}
	return rec
}

// key renders an identifying cell as a document key. Whole numbers lose their
// fractional part so "1.0" and "1" address the same key.
func key(c table.Cell) (string, bool) {
	switch c.Kind {
	case table.Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64), true
	case table.Text:
		s := strings.TrimSpace(c.Text)
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10), true
		}
		return s, s != ""
	default:
		return "", false
	}
}

func nest(keys []string, leaf document.Node) *document.Tree {
	root := document.NewTree()
	cur := root
	for i, k := range keys {
		if i == len(keys)-1 {
			_ = cur.Merge(k, leaf)
			break
		}
		next := document.NewTree()
		_ = cur.Merge(k, next)
		cur = next
	}
	return root
}

func merge(op string, t *table.Table, into *document.Tree, keys []string, leaf document.Node) error {
	if err := into.MergeTree(nest(keys, leaf)); err != nil {
		return errs.Processing(op, t.Name, err)
	}
	return nil
}

func columnIndex(op string, t *table.Table, name string) (int, error) {
	i, err := t.Index(name)
	if err != nil {
		return -1, errs.Processing(op, t.Name, err)
	}
	return i, nil
}

func shapeError(op string, t *table.Table, format string, args ...interface{}) error {
	return errs.Processing(op, t.Name, fmt.Errorf(format, args...))
}
