package design

import (
	"fmt"
	"regexp"

	"github.com/gaveldev/gavel/internal/finding"
)

// Declared design-pattern names the reviewer recognises.
var knownPatterns = map[string]*regexp.Regexp{
	"Singleton": regexp.MustCompile(`(?i)\bsingleton\b`),
	"Factory":   regexp.MustCompile(`(?i)factory\b`),
	"Observer":  regexp.MustCompile(`(?i)\bobserver\b`),
	"Strategy":  regexp.MustCompile(`(?i)\bstrategy\b`),
	"Adapter":   regexp.MustCompile(`(?i)\badapter\b`),
	"Decorator": regexp.MustCompile(`(?i)\bdecorator\b`),
	"Facade":    regexp.MustCompile(`(?i)\bfacade\b`),
}

const maxSingletonMentions = 3

var (
	complexCreationPattern = regexp.MustCompile(`(?i)(complex\s+(creation|construction|initiali[sz]ation)|many\s+constructor\s+(arguments|parameters))`)
	eventPattern           = regexp.MustCompile(`(?i)\b(events?|notifications?)\b|イベント|通知`)
)

func reviewPatterns(path, doc string, ids *finding.IDGen) []finding.Finding {
	var findings []finding.Finding

	// Singleton overuse: more than three mentions reads as a design built
	// around global instances.
	if n := len(knownPatterns["Singleton"].FindAllStringIndex(doc, -1)); n > maxSingletonMentions {
		loc := knownPatterns["Singleton"].FindStringIndex(doc)
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       finding.SeverityHigh,
			Kind:           finding.KindRisk,
			Category:       "patterns",
			Title:          "Singleton overuse",
			Description:    fmt.Sprintf("The design mentions Singleton %d times; that many global instances complicate testing and lifecycle.", n),
			Evidence:       doc[loc[0]:loc[1]],
			Recommendation: "Limit singletons to genuinely process-wide resources; inject everything else.",
			Location:       finding.Location{Path: path, Line: lineOf(doc, loc[0])},
			Status:         finding.StatusOpen,
		})
	}

	if loc := complexCreationPattern.FindStringIndex(doc); loc != nil && !knownPatterns["Factory"].MatchString(doc) {
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       finding.SeverityMedium,
			Kind:           finding.KindMissing,
			Category:       "patterns",
			Title:          "Complex creation without a Factory",
			Description:    "The design describes complex object creation but declares no Factory.",
			Evidence:       doc[loc[0]:loc[1]],
			Recommendation: "Introduce a Factory (or Builder) to own the construction logic.",
			Location:       finding.Location{Path: path, Line: lineOf(doc, loc[0])},
			Status:         finding.StatusOpen,
		})
	}

	if loc := eventPattern.FindStringIndex(doc); loc != nil && !knownPatterns["Observer"].MatchString(doc) {
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       finding.SeverityLow,
			Kind:           finding.KindMissing,
			Category:       "patterns",
			Title:          "Events without an Observer",
			Description:    "Events or notifications are described without an Observer (publish/subscribe) structure.",
			Evidence:       doc[loc[0]:loc[1]],
			Recommendation: "Consider an Observer so event producers stay decoupled from consumers.",
			Location:       finding.Location{Path: path, Line: lineOf(doc, loc[0])},
			Status:         finding.StatusOpen,
		})
	}

	return findings
}
