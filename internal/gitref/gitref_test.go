package gitref

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

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

// initRepo creates a throwaway git repository and chdirs into it.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	chdir(t, dir)

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-b", "main")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")
	return dir
}

func commitFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, args := range [][]string{{"add", name}, {"commit", "-m", "add " + name}} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
}

func TestGetMeta(t *testing.T) {
	dir := initRepo(t)
	commitFile(t, dir, "a.txt", "hello\n")

	meta, err := GetMeta()
	if err != nil {
		t.Fatalf("GetMeta error: %v", err)
	}
	if meta.Root == "" {
		t.Error("Root is empty")
	}
	if meta.Branch != "main" {
		t.Errorf("Branch = %q, want main", meta.Branch)
	}
	if len(meta.Head) != 40 {
		t.Errorf("Head = %q, want a full sha", meta.Head)
	}
}

func TestStagedFiles(t *testing.T) {
	dir := initRepo(t)
	commitFile(t, dir, "a.txt", "hello\n")

	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("new\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command("git", "add", "b.txt")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}

	files, err := StagedFiles()
	if err != nil {
		t.Fatalf("StagedFiles error: %v", err)
	}
	if len(files) != 1 || files[0] != "b.txt" {
		t.Errorf("StagedFiles = %v, want [b.txt]", files)
	}
}

func TestChangedFiles(t *testing.T) {
	dir := initRepo(t)
	commitFile(t, dir, "a.txt", "hello\n")

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ChangedFiles()
	if err != nil {
		t.Fatalf("ChangedFiles error: %v", err)
	}
	if len(files) != 1 || files[0] != "a.txt" {
		t.Errorf("ChangedFiles = %v, want [a.txt]", files)
	}
}
