package report

import (
	"io"
	"sort"
	"strings"

	"github.com/gaveldev/gavel/internal/finding"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	summary := report.Check.Summary
	ew.printf("Gavel Constitutional Validation — %s mode\n", report.Mode)
	if report.PackageType != "" {
		ew.printf("Package type: %s\n", report.PackageType)
	}
	ew.println(strings.Repeat("─", 60))
	ew.printf("Files: %d checked, %d passed, %d failed\n",
		summary.FilesChecked, summary.FilesPassed, summary.FilesFailed)
	ew.printf("Violations: %d total", summary.TotalViolations)
	if summary.TotalViolations > 0 {
		counts := severityCounts(report)
		ew.printf(" (%d critical, %d high, %d medium, %d low)",
			counts[finding.SeverityCritical],
			counts[finding.SeverityHigh],
			counts[finding.SeverityMedium],
			counts[finding.SeverityLow],
		)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	if summary.TotalViolations == 0 {
		ew.println("\nNo violations found. Looks good!")
		t.writeDecision(ew, report)
		return ew.err
	}

	grouped := groupBySeverity(report.Violations())
	for _, sev := range []finding.Severity{finding.SeverityCritical, finding.SeverityHigh, finding.SeverityMedium, finding.SeverityLow} {
		violations := grouped[sev]
		if len(violations) == 0 {
			continue
		}

		label := strings.ToUpper(string(sev))
		ew.printf("\n%s %s\n", severityIcon(sev), label)
		ew.println(strings.Repeat("─", 40))

		sort.SliceStable(violations, func(i, j int) bool {
			return violations[i].Path < violations[j].Path
		})

		for _, v := range violations {
			ew.printf("\n  %s:%d  %s\n", v.Path, v.Line, v.Title)
			article := v.Article
			if v.ArticleName != "" {
				article += " " + v.ArticleName
			}
			ew.printf("  Article: %s\n", article)

			for _, line := range wrapText(v.Description, 70) {
				ew.printf("    %s\n", line)
			}

			if v.Recommendation != "" {
				ew.println("  Recommendation:")
				for _, line := range wrapText(v.Recommendation, 70) {
					ew.printf("    %s\n", line)
				}
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	t.writeDecision(ew, report)
	return ew.err
}

func (t *TextWriter) writeDecision(ew *errWriter, report *Report) {
	d := report.Decision
	switch {
	case d.ShouldBlock:
		ew.printf("Merge: BLOCKED — %s\n", d.Reason)
		if d.RequiresPhaseMinusOne {
			ew.println("Phase -1 simplicity review required before this can proceed.")
		}
	case d.RequiresGateReview:
		ew.printf("Merge: allowed, gate review requested — %s\n", d.Reason)
	default:
		ew.println("Merge: allowed")
	}
}

func severityCounts(report *Report) map[finding.Severity]int {
	m := make(map[finding.Severity]int)
	for _, result := range report.Check.Results {
		for _, f := range result.Findings {
			m[f.Severity]++
		}
	}
	return m
}

func groupBySeverity(violations []Violation) map[finding.Severity][]Violation {
	m := make(map[finding.Severity][]Violation)
	for _, v := range violations {
		m[finding.Severity(v.Severity)] = append(m[finding.Severity(v.Severity)], v)
	}
	return m
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
