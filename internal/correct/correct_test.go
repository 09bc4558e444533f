package correct

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gaveldev/gavel/internal/artifact"
	"github.com/gaveldev/gavel/internal/finding"
	"github.com/gaveldev/gavel/internal/requirements"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

const reqDoc = `# Spec

## Functional Requirements

REQ-001: The system shall respond quickly to user actions.

## Non-Functional Requirements

None yet.

## Constraints

None.

## Glossary

None.
`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCorrector(t *testing.T, dir string) *Corrector {
	t.Helper()
	index := map[string]finding.Finding{
		"FAG-001": {
			ID:             "FAG-001",
			Severity:       finding.SeverityHigh,
			Kind:           finding.KindAmbiguous,
			Title:          `Ambiguous term "quickly"`,
			Description:    "REQ-001 uses a term with no measurable meaning.",
			Evidence:       "quickly",
			Recommendation: "within 2 seconds",
			RequirementID:  "REQ-001",
		},
		"DES-004": {
			ID:          "DES-004",
			Severity:    finding.SeverityCritical,
			Kind:        finding.KindMissing,
			Category:    "security",
			Title:       "Sensitive data without encryption",
			Description: "Card numbers are stored without a stated encryption scheme.",
		},
	}
	c := New(index, func(f artifact.File) *finding.ReviewResult {
		return requirements.Review(f, requirements.Options{Method: requirements.MethodFagan, Now: fixedNow})
	})
	c.ADRDir = filepath.Join(dir, "adr")
	c.Now = fixedNow
	return c
}

// Accept plus reject-with-adr in one batch: the document text changes, the
// translation follows, an ADR stub carries the reason, and re-review drops
// the ambiguity finding.
func TestApplyAcceptAndRejectWithADR(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "requirements.md", reqDoc)
	mirror := writeDoc(t, dir, "requirements.ja.md",
		"# 仕様\n\nREQ-001: システムはユーザー操作に quickly 応答すること。\n")

	c := testCorrector(t, dir)
	result, err := c.Apply(path, []Instruction{
		{TargetFindingID: "FAG-001", Action: ActionAccept},
		{TargetFindingID: "DES-004", Action: ActionRejectWithADR, Reason: "mitigated at load balancer"},
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	if result.ChangesApplied != 1 {
		t.Errorf("ChangesApplied = %d, want 1", result.ChangesApplied)
	}

	text, _ := os.ReadFile(path)
	if !strings.Contains(string(text), "respond within 2 seconds to user actions") {
		t.Errorf("document not corrected:\n%s", text)
	}
	if !strings.Contains(string(text), "## Change History") {
		t.Error("missing Change History section")
	}
	if !strings.Contains(string(text), "| 2026-03-14 | FAG-001 | ambiguous | accept |") {
		t.Errorf("missing history row:\n%s", text)
	}
	if !strings.Contains(string(text), "| 2026-03-14 | DES-004 | security | reject-with-adr |") {
		t.Errorf("missing reject history row:\n%s", text)
	}

	// Backup holds the original.
	backup, err := os.ReadFile(path + ".backup")
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if string(backup) != reqDoc {
		t.Error("backup does not match the original")
	}

	// Mirror got the same literal substitution.
	ja, _ := os.ReadFile(mirror)
	if !strings.Contains(string(ja), "within 2 seconds") {
		t.Errorf("mirror not updated:\n%s", ja)
	}

	// ADR stub.
	if len(result.ADRsCreated) != 1 {
		t.Fatalf("ADRsCreated = %v, want 1", result.ADRsCreated)
	}
	adr, err := os.ReadFile(result.ADRsCreated[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(adr), "# ADR-001: Sensitive data without encryption") {
		t.Errorf("ADR heading wrong:\n%s", adr)
	}
	if !strings.Contains(string(adr), "## Decision\n\nmitigated at load balancer\n") {
		t.Errorf("ADR decision should equal the reason:\n%s", adr)
	}
	if !strings.Contains(string(adr), "## Date\n\n2026-03-14\n") {
		t.Errorf("ADR date wrong:\n%s", adr)
	}

	// Re-review no longer sees the ambiguity.
	if result.UpdatedMetrics.ByKind[finding.KindAmbiguous] != 0 {
		t.Errorf("ambiguous findings after correction = %d, want 0",
			result.UpdatedMetrics.ByKind[finding.KindAmbiguous])
	}
	if !result.UpdatedQualityGate.Passed {
		t.Errorf("updated gate failed: %+v", result.UpdatedQualityGate.Criteria)
	}

	wantModified := []string{path, mirror}
	if len(result.FilesModified) != 2 || result.FilesModified[0] != wantModified[0] || result.FilesModified[1] != wantModified[1] {
		t.Errorf("FilesModified = %v, want %v", result.FilesModified, wantModified)
	}
}

func TestApplyMissingDocument(t *testing.T) {
	c := testCorrector(t, t.TempDir())
	if _, err := c.Apply(filepath.Join(t.TempDir(), "absent.md"), nil); err == nil {
		t.Error("missing document should refuse")
	}
}

func TestApplyEvidenceNotFoundSkips(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "requirements.md", reqDoc)

	c := testCorrector(t, dir)
	// Both instructions target the same evidence; the second loses.
	result, err := c.Apply(path, []Instruction{
		{TargetFindingID: "FAG-001", Action: ActionAccept},
		{TargetFindingID: "FAG-001", Action: ActionModify, NewText: "within 500 ms"},
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if result.ChangesApplied != 1 {
		t.Errorf("ChangesApplied = %d, want 1 (first wins)", result.ChangesApplied)
	}
	if len(result.RejectedFindings) != 1 {
		t.Fatalf("RejectedFindings = %+v, want one skip", result.RejectedFindings)
	}
	skip := result.RejectedFindings[0]
	if skip.Reason != "evidence-not-found" || skip.Action != ActionModify {
		t.Errorf("skip = %+v", skip)
	}

	text, _ := os.ReadFile(path)
	if strings.Contains(string(text), "within 500 ms") {
		t.Error("losing instruction still modified the document")
	}
}

func TestApplyUnknownFindingID(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "requirements.md", reqDoc)

	c := testCorrector(t, dir)
	result, err := c.Apply(path, []Instruction{
		{TargetFindingID: "FAG-999", Action: ActionAccept},
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if result.ChangesApplied != 0 || len(result.RejectedFindings) != 1 {
		t.Errorf("result = %+v", result)
	}
	if result.RejectedFindings[0].Reason != "unknown finding id" {
		t.Errorf("reason = %q", result.RejectedFindings[0].Reason)
	}
}

func TestApplyRejectLeavesTextAlone(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "requirements.md", reqDoc)

	c := testCorrector(t, dir)
	result, err := c.Apply(path, []Instruction{
		{TargetFindingID: "FAG-001", Action: ActionReject, Reason: "wording is fine for this audience"},
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if result.ChangesApplied != 0 {
		t.Errorf("ChangesApplied = %d, want 0", result.ChangesApplied)
	}

	text, _ := os.ReadFile(path)
	if !strings.Contains(string(text), "quickly") {
		t.Error("reject must not change the requirement text")
	}
	if !strings.Contains(string(text), "| 2026-03-14 | FAG-001 | ambiguous | reject |") {
		t.Error("reject should still be recorded in history")
	}
}

func TestApplyNoBackupWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "requirements.md", reqDoc)

	c := testCorrector(t, dir)
	c.CreateBackup = false
	if _, err := c.Apply(path, []Instruction{{TargetFindingID: "FAG-001", Action: ActionAccept}}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
		t.Error("backup written despite CreateBackup=false")
	}
}

func TestMirrorSkipWhenEvidenceAbsent(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "requirements.md", reqDoc)
	// Translation that paraphrased the term instead of keeping it.
	writeDoc(t, dir, "requirements.ja.md", "# 仕様\n\nREQ-001: システムは速やかに応答すること。\n")

	c := testCorrector(t, dir)
	result, err := c.Apply(path, []Instruction{{TargetFindingID: "FAG-001", Action: ActionAccept}})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(result.MirrorSkips) != 1 || result.MirrorSkips[0] != "FAG-001" {
		t.Errorf("MirrorSkips = %v", result.MirrorSkips)
	}
	if len(result.FilesModified) != 1 {
		t.Errorf("FilesModified = %v, mirror should be untouched", result.FilesModified)
	}
}

func TestApplyAppendsToExistingHistory(t *testing.T) {
	dir := t.TempDir()
	doc := reqDoc + "\n## Change History\n\n| Date | Finding | Category | Action |\n|------|---------|----------|--------|\n| 2026-03-01 | FAG-009 | ambiguous | reject |\n"
	path := writeDoc(t, dir, "requirements.md", doc)

	c := testCorrector(t, dir)
	if _, err := c.Apply(path, []Instruction{{TargetFindingID: "FAG-001", Action: ActionAccept}}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	text, _ := os.ReadFile(path)
	if got := strings.Count(string(text), "## Change History"); got != 1 {
		t.Errorf("history sections = %d, want 1", got)
	}
	if !strings.Contains(string(text), "| 2026-03-01 | FAG-009 |") {
		t.Error("existing history row lost")
	}
	if !strings.Contains(string(text), "| 2026-03-14 | FAG-001 | ambiguous | accept |") {
		t.Error("new history row missing")
	}
}

func TestADRNumberingContinues(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "requirements.md", reqDoc)

	c := testCorrector(t, dir)
	if err := os.MkdirAll(c.ADRDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, c.ADRDir, "adr-003.md", "# ADR-003: Earlier decision\n")

	result, err := c.Apply(path, []Instruction{
		{TargetFindingID: "DES-004", Action: ActionRejectWithADR, Reason: "handled upstream"},
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(result.ADRsCreated) != 1 || filepath.Base(result.ADRsCreated[0]) != "adr-004.md" {
		t.Errorf("ADRsCreated = %v, want adr-004.md", result.ADRsCreated)
	}
}

func TestMirrorPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"docs/requirements.md", "docs/requirements.ja.md"},
		{"docs/requirements.ja.md", ""},
		{"main.go", ""},
	}
	for _, tt := range tests {
		if got := MirrorPath(tt.in); got != tt.want {
			t.Errorf("MirrorPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
