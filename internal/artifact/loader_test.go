package artifact

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileCounts(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "line one\nline two\nline three")

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if f.Lines != 3 {
		t.Errorf("Lines = %d, want 3", f.Lines)
	}
	if f.Bytes != len("line one\nline two\nline three") {
		t.Errorf("Bytes = %d", f.Bytes)
	}
}

func TestLoadFileRejectsNonUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bin.md")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile on non-UTF-8 data: want error")
	}
}

func TestLoadDirSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.go", "package b\n")
	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "notes.md", "# notes\n")
	writeFile(t, dir, "vendor/dep.go", "package dep\n")

	files, failures, err := LoadDir(dir, []string{".go"}, []string{"vendor/**"})
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("failures = %v", failures)
	}
	if len(files) != 2 {
		t.Fatalf("loaded %d files, want 2", len(files))
	}
	if filepath.Base(files[0].Path) != "a.go" || filepath.Base(files[1].Path) != "b.go" {
		t.Errorf("order = [%s, %s], want [a.go, b.go]", files[0].Path, files[1].Path)
	}
}

func TestLoadDirSkipsExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/ok.go", "package ok\n")
	writeFile(t, dir, "node_modules/x/x.go", "package x\n")

	files, _, err := LoadDir(dir, []string{"go"}, []string{"node_modules"})
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("loaded %d files, want 1", len(files))
	}
}

func TestLoadDirCollectsPerFileFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.md", "fine\n")
	bad := filepath.Join(dir, "bad.md")
	if err := os.WriteFile(bad, []byte{0xff, 0xfe}, 0o644); err != nil {
		t.Fatal(err)
	}

	files, failures, err := LoadDir(dir, []string{".md"}, nil)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("loaded %d files, want 1", len(files))
	}
	if len(failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(failures))
	}
	if failures[0].Path != bad {
		t.Errorf("failure path = %s, want %s", failures[0].Path, bad)
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one\n", 1},
		{"one\ntwo", 2},
		{"one\ntwo\n", 2},
	}
	for _, tt := range tests {
		if got := countLines(tt.text); got != tt.want {
			t.Errorf("countLines(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
