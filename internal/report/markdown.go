package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gaveldev/gavel/internal/finding"
)

// WriteReview renders a requirements or design review result in the named
// format. Markdown is the reviewer-facing default; JSON is for tooling.
func WriteReview(w io.Writer, result *finding.ReviewResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
		_, err = fmt.Fprintln(w)
		return err
	case "markdown":
		return writeReviewMarkdown(w, result)
	default:
		return fmt.Errorf("unsupported review format: %s", format)
	}
}

func writeReviewMarkdown(w io.Writer, result *finding.ReviewResult) error {
	ew := &errWriter{w: w}

	ew.printf("## Gavel Review — %s\n\n", result.DocumentPath)
	ew.printf("_%s_\n\n", result.Timestamp.Format("2006-01-02 15:04:05 MST"))

	// Summary table
	ew.printf("| Severity | Count |\n")
	ew.printf("|----------|-------|\n")
	ew.printf("| Critical | %d    |\n", result.Metrics.BySeverity[finding.SeverityCritical])
	ew.printf("| High     | %d    |\n", result.Metrics.BySeverity[finding.SeverityHigh])
	ew.printf("| Medium   | %d    |\n", result.Metrics.BySeverity[finding.SeverityMedium])
	ew.printf("| Low      | %d    |\n", result.Metrics.BySeverity[finding.SeverityLow])
	ew.printf("| **Total** | **%d** |\n\n", result.Metrics.Total)

	writeScores(ew, result.Metrics)
	writeGate(ew, result.QualityGate)

	if result.Metrics.Total == 0 {
		ew.println("No findings. :white_check_mark:")
		return ew.err
	}

	grouped := make(map[finding.Severity][]finding.Finding)
	for _, f := range result.Findings {
		grouped[f.Severity] = append(grouped[f.Severity], f)
	}

	for _, sev := range []finding.Severity{finding.SeverityCritical, finding.SeverityHigh, finding.SeverityMedium, finding.SeverityLow} {
		findings := grouped[sev]
		if len(findings) == 0 {
			continue
		}

		label := strings.ToUpper(string(sev))
		ew.printf("<details>\n<summary>%s %s (%d)</summary>\n\n", mdSeverityIcon(sev), label, len(findings))

		sort.SliceStable(findings, func(i, j int) bool {
			return findings[i].ID < findings[j].ID
		})

		for _, f := range findings {
			ew.printf("### %s — %s\n\n", f.ID, f.Title)
			var meta []string
			if f.RequirementID != "" {
				meta = append(meta, "`"+f.RequirementID+"`")
			}
			if f.Article != "" {
				meta = append(meta, f.Article)
			}
			if f.Perspective != "" {
				meta = append(meta, string(f.Perspective))
			}
			meta = append(meta, string(f.Kind))
			if f.Location.Line > 0 {
				meta = append(meta, fmt.Sprintf("line %d", f.Location.Line))
			}
			ew.printf("%s\n\n", strings.Join(meta, " | "))
			ew.printf("%s\n\n", f.Description)

			if f.Evidence != "" {
				ew.printf("> %s\n\n", strings.ReplaceAll(f.Evidence, "\n", "\n> "))
			}
			if f.Recommendation != "" {
				ew.printf("**Recommendation:** %s\n\n", f.Recommendation)
			}
			ew.printf("---\n\n")
		}

		ew.printf("</details>\n\n")
	}

	return ew.err
}

func writeScores(ew *errWriter, m finding.Metrics) {
	var scores []string
	if m.EARSCompliance > 0 || m.TestabilityScore > 0 {
		scores = append(scores,
			fmt.Sprintf("EARS %.0f%%", m.EARSCompliance*100),
			fmt.Sprintf("testability %.2f", m.TestabilityScore))
	}
	if m.ReviewCoverage > 0 {
		scores = append(scores, fmt.Sprintf("coverage %.0f%%", m.ReviewCoverage*100))
	}
	if len(m.SOLIDCompliance) > 0 {
		var violated []string
		for _, p := range []string{"SRP", "OCP", "LSP", "ISP", "DIP"} {
			if ok, checked := m.SOLIDCompliance[p]; checked && !ok {
				violated = append(violated, p)
			}
		}
		if len(violated) == 0 {
			scores = append(scores, "SOLID clean")
		} else {
			scores = append(scores, "SOLID violations: "+strings.Join(violated, ", "))
		}
	}
	if len(scores) > 0 {
		ew.printf("**Scores:** %s\n\n", strings.Join(scores, " | "))
	}
}

func writeGate(ew *errWriter, g finding.QualityGate) {
	if g.Passed {
		ew.println("**Quality gate: PASSED**")
	} else {
		ew.println("**Quality gate: FAILED**")
	}
	ew.println("")
	for _, c := range g.Criteria {
		mark := ":white_check_mark:"
		if !c.Passed {
			mark = ":x:"
		}
		ew.printf("- %s %s (actual %.2f, threshold %.2f)\n", mark, c.Name, c.Actual, c.Threshold)
	}
	ew.println("")
}

func mdSeverityIcon(s finding.Severity) string {
	switch s {
	case finding.SeverityCritical:
		return ":no_entry:"
	case finding.SeverityHigh:
		return ":red_circle:"
	case finding.SeverityMedium:
		return ":orange_circle:"
	case finding.SeverityLow:
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}
