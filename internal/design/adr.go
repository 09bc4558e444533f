package design

import (
	"fmt"
	"regexp"

	"github.com/gaveldev/gavel/internal/finding"
)

// adrDocPattern decides whether a document is an ADR at all; the section
// checks only apply when it is.
var adrDocPattern = regexp.MustCompile(`(?im)^#.*\b(ADR|architecture\s+decision\s+record)\b|アーキテクチャ決定記録`)

type adrSection struct {
	Name     string
	Pattern  *regexp.Regexp
	Severity finding.Severity
}

var adrSections = []adrSection{
	{"Status", regexp.MustCompile(`(?im)^#{1,3}\s*(Status|ステータス)\b`), finding.SeverityHigh},
	{"Context", regexp.MustCompile(`(?im)^#{1,3}\s*(Context|背景|コンテキスト)\b`), finding.SeverityHigh},
	{"Decision", regexp.MustCompile(`(?im)^#{1,3}\s*(Decision|決定)\b`), finding.SeverityCritical},
	{"Consequences", regexp.MustCompile(`(?im)^#{1,3}\s*(Consequences|影響|帰結)\b`), finding.SeverityHigh},
	{"Alternatives", regexp.MustCompile(`(?im)^#{1,3}\s*(Alternatives(\s+Considered)?|代替案)\b`), finding.SeverityMedium},
}

// IsADR reports whether the document declares itself an ADR.
func IsADR(doc string) bool {
	return adrDocPattern.MatchString(doc)
}

func reviewADR(path, doc string, ids *finding.IDGen) []finding.Finding {
	if !IsADR(doc) {
		return nil
	}
	var findings []finding.Finding
	for _, section := range adrSections {
		if section.Pattern.MatchString(doc) {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       section.Severity,
			Kind:           finding.KindMissing,
			Category:       "adr",
			Title:          fmt.Sprintf("ADR missing %s section", section.Name),
			Description:    fmt.Sprintf("This record has no %s section, so the decision cannot be traced.", section.Name),
			Recommendation: fmt.Sprintf("Add a %s section.", section.Name),
			Location:       finding.Location{Path: path},
			Status:         finding.StatusOpen,
		})
	}
	return findings
}
