package design

import (
	"fmt"
	"regexp"

	"github.com/gaveldev/gavel/internal/finding"
)

// couplingCheck is one cohesion/coupling smell phrase.
type couplingCheck struct {
	Pattern        *regexp.Regexp
	Severity       finding.Severity
	Title          string
	Recommendation string
}

var couplingChecks = []couplingCheck{
	{
		Pattern:        regexp.MustCompile(`(?i)(tight(ly)?\s+coupl|strong\s+coupling)|密結合`),
		Severity:       finding.SeverityHigh,
		Title:          "Tight coupling",
		Recommendation: "Introduce an interface at the seam and depend on it from both sides.",
	},
	{
		Pattern:        regexp.MustCompile(`(?i)(global\s+(state|variables?)|shared\s+mutable\s+state)|グローバル変数`),
		Severity:       finding.SeverityHigh,
		Title:          "Global state",
		Recommendation: "Scope the state to an owner and pass it explicitly.",
	},
	{
		Pattern:        regexp.MustCompile(`(?i)\b(utility|util|helper|common)\s+(class|module)\b`),
		Severity:       finding.SeverityMedium,
		Title:          "Utility class",
		Recommendation: "Move each helper next to the type it serves; grab-bag modules grow without cohesion.",
	},
	{
		Pattern:        regexp.MustCompile(`(?i)circular\s+dependenc|循環依存`),
		Severity:       finding.SeverityCritical,
		Title:          "Circular dependency",
		Recommendation: "Break the cycle by extracting the shared part into its own module.",
	},
}

func reviewCoupling(path, doc string, ids *finding.IDGen) []finding.Finding {
	var findings []finding.Finding
	for _, check := range couplingChecks {
		loc := check.Pattern.FindStringIndex(doc)
		if loc == nil {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       check.Severity,
			Kind:           finding.KindRisk,
			Category:       "coupling",
			Title:          check.Title,
			Description:    fmt.Sprintf("The design states a %s concern (%q).", check.Title, doc[loc[0]:loc[1]]),
			Evidence:       doc[loc[0]:loc[1]],
			Recommendation: check.Recommendation,
			Location:       finding.Location{Path: path, Line: lineOf(doc, loc[0])},
			Status:         finding.StatusOpen,
		})
	}
	return findings
}
