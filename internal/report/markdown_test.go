package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gaveldev/gavel/internal/finding"
)

func sampleReview() *finding.ReviewResult {
	return &finding.ReviewResult{
		DocumentPath: "requirements.md",
		Findings: []finding.Finding{
			{
				ID:            "FAG-001",
				Severity:      finding.SeverityHigh,
				Kind:          finding.KindAmbiguous,
				Title:         `Ambiguous term "quickly"`,
				Description:   "REQ-002 uses a term with no measurable meaning.",
				Evidence:      "quickly",
				RequirementID: "REQ-002",
				Location:      finding.Location{Path: "requirements.md", Line: 7},
			},
			{
				ID:          "PBR-001",
				Severity:    finding.SeverityHigh,
				Kind:        finding.KindMissing,
				Perspective: finding.PerspectiveTester,
				Title:       "No acceptance criteria",
				Description: "Nothing tells a tester when the work is done.",
			},
		},
		Metrics: finding.Metrics{
			Total: 2,
			BySeverity: map[finding.Severity]int{
				finding.SeverityHigh: 2,
			},
			EARSCompliance:   1.0 / 3.0,
			TestabilityScore: 0.55,
			ReviewCoverage:   0.4,
		},
		QualityGate: finding.QualityGate{
			Passed: false,
			Criteria: []finding.Criterion{
				{Name: "No Critical Findings", Passed: true, Actual: 0, Threshold: 0},
				{Name: "EARS Compliance >= 0.80", Passed: false, Actual: 1.0 / 3.0, Threshold: 0.8},
			},
		},
		Timestamp: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestWriteReview_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReview(&buf, sampleReview(), "markdown"); err != nil {
		t.Fatalf("WriteReview error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Gavel Review — requirements.md") {
		t.Error("missing heading")
	}
	if !strings.Contains(out, "| High     | 2    |") {
		t.Error("missing severity table row")
	}
	if !strings.Contains(out, "Quality gate: FAILED") {
		t.Error("missing gate verdict")
	}
	if !strings.Contains(out, ":x: EARS Compliance >= 0.80") {
		t.Error("missing failed criterion")
	}
	if !strings.Contains(out, `FAG-001 — Ambiguous term "quickly"`) {
		t.Error("missing finding heading")
	}
	if !strings.Contains(out, "`REQ-002`") {
		t.Error("missing requirement id")
	}
	if !strings.Contains(out, "> quickly") {
		t.Error("missing evidence quote")
	}
	if !strings.Contains(out, "tester") {
		t.Error("missing perspective")
	}
}

func TestWriteReview_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReview(&buf, sampleReview(), "json"); err != nil {
		t.Fatalf("WriteReview error: %v", err)
	}
	if !strings.Contains(buf.String(), `"documentPath": "requirements.md"`) {
		t.Error("JSON output missing document path")
	}
}

func TestWriteReview_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReview(&buf, sampleReview(), "pdf"); err == nil {
		t.Error("unknown format should error")
	}
}

func TestWriteReview_Clean(t *testing.T) {
	result := &finding.ReviewResult{
		DocumentPath: "requirements.md",
		Metrics:      finding.Metrics{BySeverity: map[finding.Severity]int{}},
		QualityGate:  finding.QualityGate{Passed: true},
		Timestamp:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	if err := WriteReview(&buf, result, "markdown"); err != nil {
		t.Fatalf("WriteReview error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No findings") {
		t.Error("clean review should say no findings")
	}
	if !strings.Contains(out, "Quality gate: PASSED") {
		t.Error("clean review should show a passing gate")
	}
}
