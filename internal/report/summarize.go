package report

import (
	"path/filepath"
	"time"

	"bestest-extract/internal/assemble"
	"bestest-extract/internal/document"
	"bestest-extract/internal/logger"
	"bestest-extract/internal/model"
	"bestest-extract/internal/schema"
	"bestest-extract/internal/store"
)

// Summarize reloads persisted documents. Files that cannot be read as documents are
// logged and skipped.
func Summarize(paths []string) (*model.Summary, error) {
	s := model.NewSummary(time.Now().Format("2006-01-02"))
	for _, p := range paths {
		doc, err := store.Load(p)
		if err != nil {
			logger.Warn("Skipping %s: %v", p, err)
			continue
		}
		s.Add(Describe(filepath.Base(p), doc))
	}
	s.Sort()
	return s, nil
}

// Describe summarizes one document
func Describe(file string, doc *document.Tree) model.DocumentSummary {
	d := model.DocumentSummary{File: file}
	if id, ok := doc.Child(schema.IdentityTableName); ok {
		sw := assemble.SoftwareOf(id)
		d.Software, d.Version, d.ReleaseDate = sw.Name, sw.Version, sw.ReleaseDate
	}

	for _, name := range doc.Keys() {
		if name == schema.IdentityTableName {
			continue
		}
		n, _ := doc.Child(name)
		t := model.TableSummary{Name: name}
		if tree, ok := n.(*document.Tree); ok {
			t.Cases = tree.Keys()
		}
		t.Values, t.Nulls = countLeaves(n)
		d.Tables = append(d.Tables, t)
	}
	return d
}

func countLeaves(n document.Node) (values, nulls int) {
	switch x := n.(type) {
	case document.Value:
		if x.IsNull() {
			return 1, 1
		}
		return 1, 0
	case document.Record:
		for _, v := range x {
			values++
			if v.IsNull() {
				nulls++
			}
		}
	case *document.Tree:
		for _, k := range x.Keys() {
			c, _ := x.Child(k)
			v, nl := countLeaves(c)
			values += v
			nulls += nl
		}
	}
	return values, nulls
}
