package requirements

import "testing"

func TestExtractTagsAtLineStart(t *testing.T) {
	doc := `# Requirements

REQ-001: The system shall store orders.
FR-002. The UI shall show totals.
- NFR-003: The system shall respond within 2 seconds.
UC-004 The operator reviews the queue.
`
	reqs := Extract(doc)
	if len(reqs) != 4 {
		t.Fatalf("extracted %d requirements, want 4: %+v", len(reqs), reqs)
	}
	wantIDs := []string{"REQ-001", "FR-002", "NFR-003", "UC-004"}
	for i, id := range wantIDs {
		if reqs[i].ID != id {
			t.Errorf("reqs[%d].ID = %q, want %q", i, reqs[i].ID, id)
		}
	}
	if reqs[0].Text != "The system shall store orders." {
		t.Errorf("reqs[0].Text = %q", reqs[0].Text)
	}
	if reqs[0].Line != 3 {
		t.Errorf("reqs[0].Line = %d, want 3", reqs[0].Line)
	}
}

func TestExtractFullTextContinuation(t *testing.T) {
	doc := `REQ-010: The system shall archive records
older than 90 days
to cold storage.

Unrelated prose.
`
	reqs := Extract(doc)
	if len(reqs) != 1 {
		t.Fatalf("extracted %d requirements, want 1", len(reqs))
	}
	want := "The system shall archive records older than 90 days to cold storage."
	if reqs[0].FullText != want {
		t.Errorf("FullText = %q, want %q", reqs[0].FullText, want)
	}
}

func TestExtractStopsAtNextTag(t *testing.T) {
	doc := `REQ-001: First requirement.
REQ-002: Second requirement.
`
	reqs := Extract(doc)
	if len(reqs) != 2 {
		t.Fatalf("extracted %d requirements, want 2", len(reqs))
	}
	if reqs[0].FullText != "First requirement." {
		t.Errorf("FullText leaked into next tag: %q", reqs[0].FullText)
	}
}

func TestExtractIgnoresUntaggedText(t *testing.T) {
	doc := "This document mentions requirements but tags none.\n"
	if reqs := Extract(doc); len(reqs) != 0 {
		t.Errorf("extracted %d requirements from untagged text", len(reqs))
	}
}
