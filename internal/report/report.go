package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gaveldev/gavel/internal/constitution"
	"github.com/gaveldev/gavel/internal/finding"
)

// Exit codes shared by every command.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitError      = 2
)

// Report is the full output of a validation run, ready for rendering.
type Report struct {
	Tool         string                     `json:"tool"`
	Version      string                     `json:"version"`
	Mode         string                     `json:"mode"`
	PackageType  string                     `json:"packageType,omitempty"`
	Timestamp    time.Time                  `json:"timestamp"`
	Check        *constitution.CheckReport  `json:"check"`
	Decision     constitution.BlockDecision `json:"decision"`
	ArticleNames map[string]string          `json:"-"`
}

// Violation is one finding flattened with its file path for renderers
// that do not group by file. The JSON keys (file, message, suggestion)
// are the machine interchange contract; scripts parse them.
type Violation struct {
	ID             string `json:"id"`
	Article        string `json:"article"`
	ArticleName    string `json:"articleName,omitempty"`
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Description    string `json:"message"`
	Evidence       string `json:"evidence,omitempty"`
	Recommendation string `json:"suggestion"`
	Path           string `json:"file"`
	Line           int    `json:"line,omitempty"`
}

// Violations flattens the per-file findings in report order.
func (r *Report) Violations() []Violation {
	var out []Violation
	for _, result := range r.Check.Results {
		for _, f := range result.Findings {
			out = append(out, Violation{
				ID:             f.ID,
				Article:        f.Article,
				ArticleName:    r.ArticleNames[f.Article],
				Severity:       string(f.Severity),
				Title:          f.Title,
				Description:    f.Description,
				Evidence:       f.Evidence,
				Recommendation: f.Recommendation,
				Path:           f.Location.Path,
				Line:           f.Location.Line,
			})
		}
	}
	return out
}

// AnyAtOrAbove reports whether any finding meets the severity threshold.
// "none" and the empty string never match.
func (r *Report) AnyAtOrAbove(threshold string) bool {
	for _, result := range r.Check.Results {
		for _, f := range result.Findings {
			if finding.MeetsThreshold(f.Severity, threshold) {
				return true
			}
		}
	}
	return false
}

// ExitCode maps the decision to the process exit code. Violations that do
// not block only fail the run in strict mode.
func (r *Report) ExitCode(strict bool) int {
	if r.Decision.ShouldBlock {
		return ExitViolations
	}
	if strict && r.Check.Summary.TotalViolations > 0 {
		return ExitViolations
	}
	return ExitOK
}

// Writer renders a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "ci":
		return &CIWriter{}, nil
	case "junit":
		return &JUnitWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func severityIcon(s finding.Severity) string {
	switch s {
	case finding.SeverityCritical:
		return "[!!!]"
	case finding.SeverityHigh:
		return "[!!]"
	case finding.SeverityMedium:
		return "[!]"
	case finding.SeverityLow:
		return "[-]"
	default:
		return "[?]"
	}
}
