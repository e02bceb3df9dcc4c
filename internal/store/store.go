// Package store names and persists result documents.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bestest-extract/internal/assemble"
	"bestest-extract/internal/config"
	"bestest-extract/internal/document"
	"bestest-extract/internal/errs"
	"bestest-extract/internal/section"
	"bestest-extract/internal/workbook"
)

// Store writes one document per workbook under Dir.
type Store struct {
	Dir    string
	Ext    string
	Marker string
	Pretty bool
}

// New returns a store configured from cfg
func New(cfg *config.Config) *Store {
	return &Store{
		Dir:    cfg.Output.Dir,
		Ext:    cfg.Output.Extension,
		Marker: cfg.Input.Marker,
		Pretty: cfg.Output.Pretty,
	}
}

// Identifiers returns the program, version and section segments that follow the
// input marker in the workbook path
func (s *Store) Identifiers(ref *workbook.Reference) ([]string, bool) {
	segs := ref.Segments()
	for i, seg := range segs {
		if !strings.EqualFold(seg, s.Marker) {
			continue
		}
		if rest := segs[i+1:]; len(rest) >= 3 {
			return rest[:3], true
		}
		return nil, false
	}
	return nil, false
}

// Name derives the output file name. Without three path segments after the marker
// the software identity and section code are used instead.
func (s *Store) Name(ref *workbook.Reference, sec section.Type, sw assemble.Software) (string, error) {
	ids, ok := s.Identifiers(ref)
	if !ok {
		ids = []string{sw.Name, sw.Version, sec.Code()}
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		p := strings.ToLower(strings.Join(strings.Fields(id), "_"))
		if p == "" {
			return "", errs.Processing("name output", ref.Rel(), fmt.Errorf("cannot derive program/version/section from path or identity"))
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "-") + s.Ext, nil
}

// PathFor joins Dir and Name
func (s *Store) PathFor(ref *workbook.Reference, sec section.Type, sw assemble.Software) (string, error) {
	name, err := s.Name(ref, sec, sw)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, name), nil
}

// Save serializes doc to path through a temporary file, so a failed write never
// leaves a partial document behind
func (s *Store) Save(path string, doc *document.Tree) error {
	var data []byte
	var err error
	if s.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return errs.Processing("save document", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errs.Processing("save document", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bestest-*.tmp")
	if err != nil {
		return errs.Processing("save document", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return errs.Processing("save document", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errs.Processing("save document", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errs.Processing("save document", path, err)
	}
	return nil
}

// Load reads a persisted document
func Load(path string) (*document.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFound("load document", path, err)
		}
		return nil, errs.Processing("load document", path, err)
	}
	doc := document.NewTree()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errs.Unsupported("load document", path, err)
	}
	return doc, nil
}
