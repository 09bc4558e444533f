package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// WriteMemory appends a dated Markdown summary of a validation run under
// dir, one file per day. Repeated runs on the same day accumulate in that
// day's file so the history of a working session stays together.
func WriteMemory(dir string, report *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating memories dir: %w", err)
	}

	path := filepath.Join(dir, report.Timestamp.Format("2006-01-02")+".md")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening memory file: %w", err)
	}
	defer f.Close()

	ew := &errWriter{w: f}
	summary := report.Check.Summary

	ew.printf("## Validation at %s\n\n", report.Timestamp.Format("15:04:05 MST"))
	ew.printf("- Mode: %s\n", report.Mode)
	ew.printf("- Files: %d checked, %d passed, %d failed\n",
		summary.FilesChecked, summary.FilesPassed, summary.FilesFailed)
	ew.printf("- Violations: %d\n", summary.TotalViolations)
	for _, entry := range sortedArticleCounts(summary.ViolationsByArticle) {
		name := report.ArticleNames[entry.article]
		if name != "" {
			name = " (" + name + ")"
		}
		ew.printf("  - %s%s: %d\n", entry.article, name, entry.count)
	}
	switch {
	case report.Decision.ShouldBlock:
		ew.printf("- Merge: blocked — %s\n", report.Decision.Reason)
	case report.Decision.RequiresGateReview:
		ew.printf("- Merge: gate review requested — %s\n", report.Decision.Reason)
	default:
		ew.println("- Merge: allowed")
	}
	ew.println("")

	return path, ew.err
}

type articleCount struct {
	article string
	count   int
}

func sortedArticleCounts(byArticle map[string]int) []articleCount {
	out := make([]articleCount, 0, len(byArticle))
	for article, count := range byArticle {
		out = append(out, articleCount{article, count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].article < out[j].article })
	return out
}
