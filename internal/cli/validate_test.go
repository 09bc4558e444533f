package cli

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// chdir switches to dir for the duration of the test, restoring the
// previous working directory on cleanup (stand-in for t.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestRunValidateResultOrderStableWithWarmCache(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "xdg"))

	// a.go passes every article; c.go violates and is never cached.
	writeSource(t, "a.go", "// Package alpha provides the alpha helper. REQ-001\npackage alpha\n\nfunc Alpha() int { return 1 }\n")
	writeSource(t, "a_test.go", "// REQ-001\npackage alpha\n\nimport \"testing\"\n\nfunc TestAlpha(t *testing.T) {}\n")
	writeSource(t, "c.go", "package gamma\n\nfunc Gamma() int { return 3 }\n")

	for run := 0; run < 2; run++ {
		rep, err := runValidate([]string{"."})
		if err != nil {
			t.Fatalf("run %d: runValidate error: %v", run, err)
		}

		if rep.Check.Summary.FilesChecked != 3 {
			t.Fatalf("run %d: FilesChecked = %d, want 3", run, rep.Check.Summary.FilesChecked)
		}
		var paths []string
		for _, result := range rep.Check.Results {
			paths = append(paths, result.Path)
		}
		if !sort.StringsAreSorted(paths) {
			t.Errorf("run %d: results not in path order: %v", run, paths)
		}
		for _, result := range rep.Check.Results {
			if filepath.Base(result.Path) == "a.go" && !result.Passed {
				t.Errorf("run %d: a.go should pass: %+v", run, result.Findings)
			}
			if filepath.Base(result.Path) == "c.go" && result.Passed {
				t.Errorf("run %d: c.go should have findings", run)
			}
		}
	}
}
