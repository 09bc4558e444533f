package requirements

import (
	"strings"
	"testing"

	"github.com/gaveldev/gavel/internal/finding"
)

const completeDoc = `# Spec

## Functional Requirements

REQ-001: The system shall store orders.

## Non-Functional Requirements

NFR-001: The system shall respond within 2 seconds.

## Constraints

The system runs on a single region.

## Glossary

Order: a purchase request.
`

func runFagan(doc string) []finding.Finding {
	return faganReview("spec.md", doc, Extract(doc), finding.NewIDGen("FAG"))
}

func titles(findings []finding.Finding) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Title)
	}
	return out
}

func TestFaganCompleteDocIsClean(t *testing.T) {
	findings := runFagan(completeDoc)
	if len(findings) != 0 {
		t.Errorf("complete document produced findings: %v", titles(findings))
	}
}

func TestFaganMissingSections(t *testing.T) {
	doc := "# Spec\n\nREQ-001: The system shall store orders.\n"
	findings := runFagan(doc)

	wantMissing := []string{
		"Missing section: Functional Requirements",
		"Missing section: Non-Functional Requirements",
		"Missing section: Constraints",
		"Missing section: Glossary",
	}
	got := titles(findings)
	for _, w := range wantMissing {
		found := false
		for _, g := range got {
			if g == w {
				found = true
			}
		}
		if !found {
			t.Errorf("missing expected finding %q in %v", w, got)
		}
	}
	for _, f := range findings {
		if f.Kind == finding.KindMissing && f.Severity != finding.SeverityHigh {
			t.Errorf("section finding severity = %q, want high", f.Severity)
		}
	}
}

func TestFaganJapaneseSectionHeadings(t *testing.T) {
	doc := `# 仕様

## 機能要件

REQ-001: The system shall store orders.

## 非機能要件

NFR-001: The system shall respond within 2 seconds.

## 制約

None.

## 用語集

None.
`
	for _, f := range runFagan(doc) {
		if strings.HasPrefix(f.Title, "Missing section") {
			t.Errorf("Japanese heading not recognised: %s", f.Title)
		}
	}
}

func TestFaganAmbiguousTerms(t *testing.T) {
	doc := completeDoc + "\nREQ-002: The system shall respond quickly and 素早く process jobs.\n"
	findings := runFagan(doc)

	var hits []finding.Finding
	for _, f := range findings {
		if f.Kind == finding.KindAmbiguous {
			hits = append(hits, f)
		}
	}
	if len(hits) != 2 {
		t.Fatalf("ambiguous findings = %d (%v), want 2 (quickly, 素早く)", len(hits), titles(hits))
	}
	for _, h := range hits {
		if h.Severity != finding.SeverityHigh {
			t.Errorf("ambiguous finding severity = %q, want high", h.Severity)
		}
		if h.RequirementID != "REQ-002" {
			t.Errorf("ambiguous finding requirement = %q, want REQ-002", h.RequirementID)
		}
		if h.Evidence == "" {
			t.Error("ambiguous finding lacks the term as evidence")
		}
	}
}

func TestFaganAmbiguousWholeWordOnly(t *testing.T) {
	// "somewhere" must not trip the "some" term.
	doc := completeDoc + "\nREQ-003: The system shall store files somewhere under /var with 1 copy.\n"
	for _, f := range runFagan(doc) {
		if f.Kind == finding.KindAmbiguous {
			t.Errorf("false ambiguous hit: %s (%s)", f.Title, f.Evidence)
		}
	}
}

func TestFaganNonEARS(t *testing.T) {
	doc := completeDoc + "\nREQ-004: Display results on screen for 10 operators.\n"
	findings := runFagan(doc)

	var nonEARS []finding.Finding
	for _, f := range findings {
		if f.Title == "Requirement not in EARS form" {
			nonEARS = append(nonEARS, f)
		}
	}
	if len(nonEARS) != 1 {
		t.Fatalf("non-EARS findings = %d, want 1", len(nonEARS))
	}
	if nonEARS[0].Severity != finding.SeverityMedium {
		t.Errorf("non-EARS severity = %q, want medium", nonEARS[0].Severity)
	}
}

func TestFaganShortNonEARSTextIgnored(t *testing.T) {
	doc := completeDoc + "\nREQ-005: Fast 1 ms\n"
	for _, f := range runFagan(doc) {
		if f.Title == "Requirement not in EARS form" {
			t.Error("short requirement text produced a non-EARS finding")
		}
	}
}

func TestFaganUntestable(t *testing.T) {
	doc := completeDoc + "\nREQ-006: Keep the interface responsive for operators at scale.\n"
	findings := runFagan(doc)

	var hits int
	for _, f := range findings {
		if f.Kind == finding.KindUntestable {
			hits++
			if f.Severity != finding.SeverityMedium {
				t.Errorf("untestable severity = %q, want medium", f.Severity)
			}
		}
	}
	if hits != 1 {
		t.Errorf("untestable findings = %d, want 1", hits)
	}
}

func TestFaganDuplicateIDs(t *testing.T) {
	doc := completeDoc + "\nREQ-001: The system shall archive orders after 30 days.\n"
	findings := runFagan(doc)

	var dups int
	for _, f := range findings {
		if f.Kind == finding.KindRedundant {
			dups++
			if f.RequirementID != "REQ-001" {
				t.Errorf("duplicate finding requirement = %q", f.RequirementID)
			}
		}
	}
	if dups != 1 {
		t.Errorf("duplicate findings = %d, want exactly 1 per duplicated id", dups)
	}
}
