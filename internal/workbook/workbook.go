// Package workbook resolves workbook paths against the project root.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bestest-extract/internal/errs"
	"bestest-extract/internal/logger"
)

// Reference is a workbook path known to exist and be a regular file.
// The only way to obtain one is Locate.
type Reference struct {
	path string // absolute
	rel  string // relative to the project root, slash separated
}

// Locate resolves path (absolute or relative to root) and checks that it names an
// existing regular file. The attempted path is logged on failure.
func Locate(root, path string) (*Reference, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errs.NotFound("locate", path, fmt.Errorf("empty path"))
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, path)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		logger.Error("Workbook not found: %s", abs)
		return nil, errs.NotFound("locate", abs, err)
	}
	if !info.Mode().IsRegular() {
		logger.Error("Workbook is not a regular file: %s", abs)
		return nil, errs.NotFound("locate", abs, fmt.Errorf("not a regular file"))
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		// outside the root; keep the absolute form for naming
		rel = abs
	}

	return &Reference{path: abs, rel: filepath.ToSlash(rel)}, nil
}

// Path returns the absolute workbook path
func (r *Reference) Path() string {
	return r.path
}

// Rel returns the slash-separated path relative to the project root
func (r *Reference) Rel() string {
	return r.rel
}

// Name returns the workbook base file name
func (r *Reference) Name() string {
	return filepath.Base(r.path)
}

// Ext returns the lower-cased file extension
func (r *Reference) Ext() string {
	return strings.ToLower(filepath.Ext(r.path))
}

// Segments returns the directory segments of Rel, excluding the file name
func (r *Reference) Segments() []string {
	dir := filepath.ToSlash(filepath.Dir(r.rel))
	if dir == "." || dir == "/" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(dir, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *Reference) String() string {
	return r.rel
}
