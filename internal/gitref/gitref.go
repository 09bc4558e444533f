package gitref

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// Meta contains git repository metadata.
type Meta struct {
	Root   string
	Head   string
	Branch string
}

// GetMeta collects repository metadata from git.
func GetMeta() (Meta, error) {
	root, err := gitOutput("rev-parse", "--show-toplevel")
	if err != nil {
		return Meta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput("rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return Meta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// StagedFiles lists files in the index that differ from HEAD. Deleted
// files are excluded; there is nothing to check in them.
func StagedFiles() ([]string, error) {
	out, err := gitOutput("diff", "--cached", "--name-only", "--diff-filter=d")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}
	return splitFiles(out), nil
}

// ChangedFiles lists files in the working tree that differ from HEAD,
// staged or not.
func ChangedFiles() ([]string, error) {
	out, err := gitOutput("diff", "HEAD", "--name-only", "--diff-filter=d")
	if err != nil {
		return nil, fmt.Errorf("git diff HEAD: %w", err)
	}
	return splitFiles(out), nil
}

func splitFiles(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	sort.Strings(files)
	return files
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
