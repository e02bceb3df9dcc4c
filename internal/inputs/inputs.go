// Package inputs expands command-line paths into files and routes each file to the
// extraction pipeline or the reporting stage.
package inputs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bestest-extract/internal/errs"
	"bestest-extract/internal/logger"
)

// Expand resolves args against root. Directories are walked recursively; version
// control directories and Office lock files are skipped.
func Expand(root string, args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range args {
		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			logger.Error("Input not found: %s", path)
			return nil, errs.NotFound("expand", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == ".git" || d.Name() == ".svn" {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(d.Name(), "~$") {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
	}
	return files, nil
}

// Routed is the outcome of Route.
type Routed struct {
	Extract []string
	Report  []string
	Ignored []string
}

// Router decides where a file goes.
type Router struct {
	// Root is the project root. Only segments below it are tested for Marker.
	Root string
	// Marker is the directory segment that identifies simulation output workbooks.
	Marker string
	// Workbooks are the extensions accepted under the marker.
	Workbooks []string
	// Documents is the extension of persisted result documents.
	Documents string
}

// Route sends files with a Marker path segment and a workbook extension to
// extraction and persisted documents elsewhere to reporting. Everything else is
// ignored.
func (r Router) Route(files []string) Routed {
	var out Routed
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		switch {
		case r.HasMarker(f):
			if r.isWorkbook(ext) {
				out.Extract = append(out.Extract, f)
			} else {
				logger.Debug("Ignoring non-workbook input: %s", f)
				out.Ignored = append(out.Ignored, f)
			}
		case ext == strings.ToLower(r.Documents):
			out.Report = append(out.Report, f)
		default:
			logger.Debug("Ignoring file outside %q: %s", r.Marker, f)
			out.Ignored = append(out.Ignored, f)
		}
	}
	return out
}

// HasMarker reports whether a directory segment of path below Root equals Marker,
// ignoring case. Paths outside Root never carry the marker.
func (r Router) HasMarker(path string) bool {
	rel := path
	if r.Root != "" {
		var err error
		rel, err = filepath.Rel(r.Root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return false
		}
	}
	dir := filepath.ToSlash(filepath.Dir(rel))
	for _, seg := range strings.Split(dir, "/") {
		if seg != "" && strings.EqualFold(seg, r.Marker) {
			return true
		}
	}
	return false
}

func (r Router) isWorkbook(ext string) bool {
	for _, e := range r.Workbooks {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
