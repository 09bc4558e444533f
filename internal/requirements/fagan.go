package requirements

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gaveldev/gavel/internal/finding"
)

// Required document sections for the Fagan completeness check.
var requiredSections = []struct {
	Name    string
	Pattern *regexp.Regexp
}{
	{"Functional Requirements", regexp.MustCompile(`(?im)^#{1,4}\s*.*(functional requirements|機能要件)`)},
	{"Non-Functional Requirements", regexp.MustCompile(`(?im)^#{1,4}\s*.*(non-functional requirements|非機能要件)`)},
	{"Constraints", regexp.MustCompile(`(?im)^#{1,4}\s*.*(constraints|制約)`)},
	{"Glossary", regexp.MustCompile(`(?im)^#{1,4}\s*.*(glossary|用語集)`)},
}

// The closed list of ambiguous terms, English and Japanese. Published in
// the tool's glossary; treat additions as a contract change.
var ambiguousTerms = []string{
	"quickly", "fast", "easily", "user-friendly", "efficient", "efficiently",
	"appropriate", "appropriately", "adequate", "several", "some", "many",
	"flexible", "robust", "seamless", "seamlessly", "intuitive", "simple",
	"as soon as possible", "etc",
	"素早く", "高速に", "簡単に", "使いやすい", "効率的", "適切に", "柔軟に",
	"いくつか", "多くの", "できるだけ早く", "など",
}

// Per-term word-boundary patterns, compiled once.
var ambiguousTermPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(ambiguousTerms))
	for _, term := range ambiguousTerms {
		if isASCII(term) {
			patterns[term] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		}
	}
	return patterns
}()

var (
	numberPattern     = regexp.MustCompile(`\d`)
	modalVerbPattern  = regexp.MustCompile(`(?i)\b(shall|must|will|should)\b|(なければならない|すること)`)
	unitPattern       = regexp.MustCompile(`(?i)\b(ms|msec|milliseconds?|s|sec|seconds?|minutes?|hours?|days?|%|percent|[KMGT]B|px|rpm|qps|rps)\b|(秒|ミリ秒|分|時間|日|件|回|パーセント)`)
	quantifierPattern = regexp.MustCompile(`(?i)\b(all|every|each|any|at least|at most|no more than|no less than|within|up to)\b|(すべて|全て|各|以内|以上|以下|最大|最小)`)
)

// faganReview runs the completeness and form pass over the document.
func faganReview(path, doc string, reqs []Requirement, ids *finding.IDGen) []finding.Finding {
	var findings []finding.Finding

	// 1. Completeness: required sections.
	for _, section := range requiredSections {
		if section.Pattern.MatchString(doc) {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       finding.SeverityHigh,
			Kind:           finding.KindMissing,
			Category:       "fagan",
			Title:          fmt.Sprintf("Missing section: %s", section.Name),
			Description:    fmt.Sprintf("The document has no %s section.", section.Name),
			Recommendation: fmt.Sprintf("Add a %q heading with its content.", section.Name),
			Location:       finding.Location{Path: path, Line: 1},
			Status:         finding.StatusOpen,
		})
	}

	for _, req := range reqs {
		// 2. Ambiguity: closed term list, each hit named.
		for _, term := range ambiguousTerms {
			if !containsTerm(req.FullText, term) {
				continue
			}
			findings = append(findings, finding.Finding{
				ID:             ids.Next(),
				Severity:       finding.SeverityHigh,
				Kind:           finding.KindAmbiguous,
				Category:       "fagan",
				Title:          fmt.Sprintf("Ambiguous term %q", term),
				Description:    fmt.Sprintf("%s uses the ambiguous term %q.", req.ID, term),
				Evidence:       term,
				Recommendation: fmt.Sprintf("Replace %q with a measurable condition.", term),
				Location:       finding.Location{Path: path, Line: req.Line},
				RequirementID:  req.ID,
				Status:         finding.StatusOpen,
			})
		}

		// 3. EARS form.
		if _, ok := ClassifyEARS(req.Text); !ok && len(req.Text) > 10 {
			findings = append(findings, finding.Finding{
				ID:             ids.Next(),
				Severity:       finding.SeverityMedium,
				Kind:           finding.KindNonCompliant,
				Category:       "fagan",
				Title:          "Requirement not in EARS form",
				Description:    fmt.Sprintf("%s matches none of the five EARS templates.", req.ID),
				Evidence:       req.Text,
				Recommendation: "Rewrite using an EARS template, e.g. \"When <trigger>, the <system> shall <response>\".",
				Location:       finding.Location{Path: path, Line: req.Line},
				RequirementID:  req.ID,
				Status:         finding.StatusOpen,
			})
		}

		// 4. Testability: a number or a modal verb must anchor a testable
		// condition.
		if len(req.FullText) > 20 &&
			!numberPattern.MatchString(req.FullText) &&
			!modalVerbPattern.MatchString(req.FullText) {
			findings = append(findings, finding.Finding{
				ID:             ids.Next(),
				Severity:       finding.SeverityMedium,
				Kind:           finding.KindUntestable,
				Category:       "fagan",
				Title:          "Requirement not testable",
				Description:    fmt.Sprintf("%s states no measurable number or binding modal verb.", req.ID),
				Evidence:       req.Text,
				Recommendation: "State a measurable threshold or a binding shall/must condition.",
				Location:       finding.Location{Path: path, Line: req.Line},
				RequirementID:  req.ID,
				Status:         finding.StatusOpen,
			})
		}
	}

	// 5. Uniqueness: duplicate ids.
	seen := map[string]int{}
	for _, req := range reqs {
		seen[req.ID]++
	}
	for _, req := range reqs {
		if seen[req.ID] < 2 {
			continue
		}
		seen[req.ID] = 0 // report each duplicate id once
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       finding.SeverityHigh,
			Kind:           finding.KindRedundant,
			Category:       "fagan",
			Title:          fmt.Sprintf("Duplicate requirement id %s", req.ID),
			Description:    fmt.Sprintf("The id %s is defined more than once.", req.ID),
			Recommendation: "Renumber the duplicates so every requirement id is unique.",
			Location:       finding.Location{Path: path, Line: req.Line},
			RequirementID:  req.ID,
			Status:         finding.StatusOpen,
		})
	}

	return findings
}

// containsTerm does a case-insensitive whole-word match for ASCII terms and
// a substring match for Japanese terms.
func containsTerm(text, term string) bool {
	if re, ok := ambiguousTermPatterns[term]; ok {
		return re.MatchString(text)
	}
	return strings.Contains(text, term)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}
