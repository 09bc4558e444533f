package report

import (
	"io"
	"strings"

	"github.com/gaveldev/gavel/internal/finding"
)

// CIWriter emits GitHub Actions workflow commands: one annotation per
// violation plus machine-readable outputs the workflow can gate on.
type CIWriter struct{}

func (c *CIWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	for _, v := range report.Violations() {
		level := "warning"
		rank := finding.SeverityRank(finding.Severity(v.Severity))
		if rank >= finding.SeverityRank(finding.SeverityHigh) {
			level = "error"
		}
		ew.printf("::%s file=%s,line=%d,title=%s::[%s] %s\n",
			level, v.Path, v.Line, escapeProperty(v.Article), v.Severity, escapeData(v.Title))
	}

	summary := report.Check.Summary
	ew.printf("::notice::gavel: %d file(s) checked, %d violation(s)\n",
		summary.FilesChecked, summary.TotalViolations)

	ew.printf("violations=%d\n", summary.TotalViolations)
	ew.printf("blocked=%t\n", report.Decision.ShouldBlock)
	ew.printf("phase_minus_one=%t\n", report.Decision.RequiresPhaseMinusOne)
	ew.printf("gate_review=%t\n", report.Decision.RequiresGateReview)

	return ew.err
}

// Workflow commands terminate on newlines and parse properties on commas,
// so both get percent-encoded per the Actions toolkit rules.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

func escapeProperty(s string) string {
	s = escapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
