package design

import (
	"fmt"
	"regexp"

	"github.com/gaveldev/gavel/internal/finding"
)

// SOLID principle tags carried in Finding.Article.
const (
	PrincipleSRP = "SRP"
	PrincipleOCP = "OCP"
	PrincipleLSP = "LSP"
	PrincipleISP = "ISP"
	PrincipleDIP = "DIP"
)

// AllPrinciples in canonical order.
var AllPrinciples = []string{PrincipleSRP, PrincipleOCP, PrincipleLSP, PrincipleISP, PrincipleDIP}

// solidCheck is one textual signal tied to a principle.
type solidCheck struct {
	Principle      string
	Pattern        *regexp.Regexp
	Severity       finding.Severity
	Title          string
	Recommendation string
}

var solidChecks = []solidCheck{
	{
		Principle:      PrincipleSRP,
		Pattern:        regexp.MustCompile(`\b[A-Z]\w*(?:Manager|Handler|Processor)\b`),
		Severity:       finding.SeverityHigh,
		Title:          "Class name suggests multiple responsibilities",
		Recommendation: "Split the class by responsibility and name each part after what it does.",
	},
	{
		Principle:      PrincipleSRP,
		Pattern:        regexp.MustCompile(`\b[A-Z]\w+And[A-Z]\w+\b|\b[A-Z]\w*God\w*\b`),
		Severity:       finding.SeverityHigh,
		Title:          "Conjoined or god-object class name",
		Recommendation: "A name joining two duties (or a god object) marks a class to split.",
	},
	{
		Principle:      PrincipleOCP,
		Pattern:        regexp.MustCompile(`(?i)(switch\s+on\s+type|type\s+switch|instanceof|typeof\s+check|case\s+\w+Type\b)`),
		Severity:       finding.SeverityHigh,
		Title:          "Type-based branching",
		Recommendation: "Replace type switches with polymorphic dispatch so new variants need no edits here.",
	},
	{
		Principle:      PrincipleLSP,
		Pattern:        regexp.MustCompile(`(?i)(NotImplementedException|UnsupportedOperationException|not\s+implemented\s+in\s+subclass|throws?\s+NotImplemented)`),
		Severity:       finding.SeverityHigh,
		Title:          "Subtype refuses base behaviour",
		Recommendation: "A subtype that throws on inherited operations breaks substitutability; restructure the hierarchy.",
	},
	{
		Principle:      PrincipleISP,
		Pattern:        regexp.MustCompile(`(?i)(fat\s+interface|large\s+interface|interface\s+with\s+\d{2,}\s+methods)`),
		Severity:       finding.SeverityMedium,
		Title:          "Fat interface",
		Recommendation: "Split the interface into role-specific interfaces.",
	},
	{
		Principle:      PrincipleDIP,
		Pattern:        regexp.MustCompile(`(?i)(directly\s+(depends\s+on|instantiates?|creates?)\s+\w*\s*(concrete|class)|depends?\s+on\s+concrete|new\s+[A-Z]\w+\(\)\s+directly)`),
		Severity:       finding.SeverityHigh,
		Title:          "Direct dependency on concrete class",
		Recommendation: "Depend on an abstraction and inject the concrete implementation.",
	},
}

func reviewSOLID(path, doc string, ids *finding.IDGen) []finding.Finding {
	var findings []finding.Finding
	for _, check := range solidChecks {
		for _, loc := range check.Pattern.FindAllStringIndex(doc, -1) {
			evidence := doc[loc[0]:loc[1]]
			findings = append(findings, finding.Finding{
				ID:             ids.Next(),
				Article:        check.Principle,
				Severity:       check.Severity,
				Kind:           finding.KindNonCompliant,
				Category:       "solid",
				Title:          check.Title,
				Description:    fmt.Sprintf("%s signal %q violates %s.", check.Title, evidence, check.Principle),
				Evidence:       evidence,
				Recommendation: check.Recommendation,
				Location:       finding.Location{Path: path, Line: lineOf(doc, loc[0])},
				Status:         finding.StatusOpen,
			})
		}
	}
	return findings
}
