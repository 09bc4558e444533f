package correct

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gaveldev/gavel/internal/finding"
)

// writeADR produces an ADR stub for a reject-with-adr instruction. The id
// continues the numbering already present in the ADR directory so stubs
// from separate runs do not collide.
func (c *Corrector) writeADR(f finding.Finding, reason string) (string, error) {
	if err := os.MkdirAll(c.ADRDir, 0o755); err != nil {
		return "", fmt.Errorf("creating ADR directory: %w", err)
	}

	n, err := nextADRNumber(c.ADRDir)
	if err != nil {
		return "", err
	}

	id := fmt.Sprintf("ADR-%03d", n)
	path := filepath.Join(c.ADRDir, strings.ToLower(id)+".md")
	date := c.Now().UTC().Format("2006-01-02")

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", id, f.Title)
	b.WriteString("## Status\n\nAccepted\n\n")
	fmt.Fprintf(&b, "## Context\n\nFinding %s: %s\n", f.ID, f.Description)
	if f.Evidence != "" {
		fmt.Fprintf(&b, "\n> %s\n", f.Evidence)
	}
	fmt.Fprintf(&b, "\n## Decision\n\n%s\n\n", reason)
	b.WriteString("## Consequences\n\nTo be assessed.\n\n")
	fmt.Fprintf(&b, "## Date\n\n%s\n", date)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing ADR: %w", err)
	}
	return path, nil
}

func nextADRNumber(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading ADR directory: %w", err)
	}
	max := 0
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		var n int
		if _, err := fmt.Sscanf(strings.ToLower(name), "adr-%d", &n); err == nil && n > max {
			max = n
		}
	}
	return max + 1, nil
}
