package artifact

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one loaded artifact.
type File struct {
	Path  string
	Text  string
	Lines int
	Bytes int
}

// LoadError records a file that could not be loaded. The batch continues;
// the file is reported as failed.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// LoadFile reads a single artifact. Non-UTF-8 content is an error.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return File{}, fmt.Errorf("%s: not valid UTF-8", path)
	}
	text := string(data)
	return File{
		Path:  path,
		Text:  text,
		Lines: countLines(text),
		Bytes: len(data),
	}, nil
}

// LoadDir walks a directory and loads every file whose extension is in
// exts (nil means all) and whose path matches no exclusion glob. Results
// are in sorted path order. Per-file read failures are collected, not
// fatal.
func LoadDir(dir string, exts, exclude []string) ([]File, []LoadError, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			rel = path
		}
		if d.IsDir() {
			if excluded(rel, exclude) && rel != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if !matchExt(path, exts) || excluded(rel, exclude) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	var files []File
	var failures []LoadError
	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			failures = append(failures, LoadError{Path: p, Err: err})
			continue
		}
		files = append(files, f)
	}
	return files, failures, nil
}

func matchExt(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}

func excluded(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
