package design

import (
	"fmt"
	"regexp"

	"github.com/gaveldev/gavel/internal/finding"
)

// c4Level names a required C4 diagram level.
type c4Level struct {
	Name     string
	Pattern  *regexp.Regexp
	Severity finding.Severity
}

var c4Levels = []c4Level{
	{"Context", regexp.MustCompile(`(?i)(context\s+diagram|system\s+context|C4.{0,20}context)|コンテキスト図`), finding.SeverityHigh},
	{"Container", regexp.MustCompile(`(?i)(container\s+diagram|C4.{0,20}container)|コンテナ図`), finding.SeverityHigh},
	{"Component", regexp.MustCompile(`(?i)(component\s+diagram|C4.{0,20}component)|コンポーネント図`), finding.SeverityMedium},
}

func reviewC4(path, doc string, ids *finding.IDGen) []finding.Finding {
	var findings []finding.Finding
	for _, level := range c4Levels {
		if level.Pattern.MatchString(doc) {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       level.Severity,
			Kind:           finding.KindMissing,
			Category:       "c4",
			Title:          fmt.Sprintf("Missing C4 %s diagram", level.Name),
			Description:    fmt.Sprintf("The design includes no C4 %s level diagram or section.", level.Name),
			Recommendation: fmt.Sprintf("Add a %s diagram (Mermaid or PlantUML) so readers see that level of the architecture.", level.Name),
			Location:       finding.Location{Path: path},
			Status:         finding.StatusOpen,
		})
	}
	return findings
}
