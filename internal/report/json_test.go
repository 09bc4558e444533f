package report

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONWriter_Envelope(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, violatingReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var envelope struct {
		Version string `json:"version"`
		Mode    string `json:"mode"`
		Summary struct {
			FilesChecked    int `json:"filesChecked"`
			TotalViolations int `json:"totalViolations"`
		} `json:"summary"`
		Status struct {
			Blocked               bool   `json:"blocked"`
			RequiresPhaseMinusOne bool   `json:"requiresPhaseMinusOne"`
			Reason                string `json:"reason"`
		} `json:"status"`
		Violations []struct {
			ID         string `json:"id"`
			Article    string `json:"article"`
			Severity   string `json:"severity"`
			File       string `json:"file"`
			Message    string `json:"message"`
			Suggestion string `json:"suggestion"`
		} `json:"violations"`
		ExitCode int `json:"exitCode"`
	}
	if err := json.Unmarshal(buf.Bytes(), &envelope); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if envelope.Version != "1.0" || envelope.Mode != "medium" {
		t.Errorf("envelope header = %q/%q", envelope.Version, envelope.Mode)
	}
	if envelope.Summary.TotalViolations != 2 {
		t.Errorf("totalViolations = %d, want 2", envelope.Summary.TotalViolations)
	}
	if !envelope.Status.Blocked || !envelope.Status.RequiresPhaseMinusOne {
		t.Error("status flags not carried through")
	}
	if envelope.Status.Reason == "" {
		t.Error("status reason empty")
	}
	if len(envelope.Violations) != 2 {
		t.Fatalf("violations = %d, want 2", len(envelope.Violations))
	}
	if envelope.Violations[0].ID != "CV-001" || envelope.Violations[0].Article != "CONST-007" {
		t.Errorf("first violation = %+v", envelope.Violations[0])
	}
	if envelope.Violations[0].File != "main.go" {
		t.Errorf("file = %q, want main.go", envelope.Violations[0].File)
	}
	if envelope.Violations[0].Message == "" || envelope.Violations[0].Suggestion == "" {
		t.Error("message and suggestion keys must carry the finding text")
	}
	if envelope.ExitCode != ExitViolations {
		t.Errorf("exitCode = %d, want %d", envelope.ExitCode, ExitViolations)
	}
}

func TestJSONWriter_EmptyViolationsIsArray(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, cleanReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"violations": []`)) {
		t.Error("empty violations should serialise as [], not null")
	}
}
