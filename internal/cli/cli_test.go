package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gaveldev/gavel/internal/finding"
)

func TestParsePerspectives(t *testing.T) {
	got, err := parsePerspectives("tester, Security")
	if err != nil {
		t.Fatalf("parsePerspectives error: %v", err)
	}
	want := []finding.Perspective{finding.PerspectiveTester, finding.PerspectiveSecurity}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("parsePerspectives = %v, want %v", got, want)
	}

	if got, err := parsePerspectives(""); err != nil || got != nil {
		t.Errorf("empty input = %v, %v; want nil, nil", got, err)
	}

	if _, err := parsePerspectives("tester,lawyer"); err == nil {
		t.Error("unknown perspective accepted")
	}
}

func TestLoadInstructions_Inline(t *testing.T) {
	instructions, err := loadInstructions(`[{"targetFindingId":"FAG-001","action":"accept"}]`)
	if err != nil {
		t.Fatalf("loadInstructions error: %v", err)
	}
	if len(instructions) != 1 || instructions[0].TargetFindingID != "FAG-001" {
		t.Errorf("instructions = %+v", instructions)
	}
}

func TestLoadInstructions_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instructions.json")
	content := `[{"targetFindingId":"DES-004","action":"reject-with-adr","reason":"mitigated at load balancer"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	instructions, err := loadInstructions(path)
	if err != nil {
		t.Fatalf("loadInstructions error: %v", err)
	}
	if len(instructions) != 1 || instructions[0].Reason != "mitigated at load balancer" {
		t.Errorf("instructions = %+v", instructions)
	}
}

func TestLoadInstructions_Invalid(t *testing.T) {
	if _, err := loadInstructions(""); err == nil {
		t.Error("empty instructions accepted")
	}
	if _, err := loadInstructions("not json"); err == nil {
		t.Error("malformed instructions accepted")
	}
}

func TestReviewerFor(t *testing.T) {
	for _, docType := range []string{"requirements", "design"} {
		if _, err := reviewerFor(docType); err != nil {
			t.Errorf("reviewerFor(%q) error: %v", docType, err)
		}
	}
	if _, err := reviewerFor("poetry"); err == nil {
		t.Error("unknown document type accepted")
	}
}

func TestMatchAnyExt(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.go", true},
		{"app/service.py", true},
		{"component.tsx", true},
		{"README.md", false},
		{"go", false},
	}
	for _, tt := range tests {
		if got := matchAnyExt(tt.path); got != tt.want {
			t.Errorf("matchAnyExt(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
