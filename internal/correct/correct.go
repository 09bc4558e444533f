package correct

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gaveldev/gavel/internal/artifact"
	"github.com/gaveldev/gavel/internal/finding"
)

// Action is what a correction instruction does with its finding.
type Action string

const (
	ActionAccept        Action = "accept"
	ActionModify        Action = "modify"
	ActionReject        Action = "reject"
	ActionRejectWithADR Action = "reject-with-adr"
)

// Instruction targets one finding from a prior review.
type Instruction struct {
	TargetFindingID string `json:"targetFindingId"`
	Action          Action `json:"action"`
	NewText         string `json:"newText,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// Rejected records an instruction that did not change the document:
// explicit rejects and skips alike.
type Rejected struct {
	FindingID string `json:"findingId"`
	Action    Action `json:"action"`
	Reason    string `json:"reason"`
}

// Result is the outcome of one correction batch.
type Result struct {
	ChangesApplied     int                 `json:"changesApplied"`
	RejectedFindings   []Rejected          `json:"rejectedFindings"`
	ADRsCreated        []string            `json:"adrsCreated"`
	MirrorSkips        []string            `json:"mirrorSkips,omitempty"`
	UpdatedQualityGate finding.QualityGate `json:"updatedQualityGate"`
	UpdatedMetrics     finding.Metrics     `json:"updatedMetrics"`
	FilesModified      []string            `json:"filesModified"`
}

// Reviewer re-reviews the corrected document so the result carries an
// updated gate.
type Reviewer func(file artifact.File) *finding.ReviewResult

// Corrector applies instruction batches to reviewed documents. Findings
// are resolved through Index, built from the review that produced them.
type Corrector struct {
	Index          map[string]finding.Finding
	Review         Reviewer
	ADRDir         string
	CreateBackup   bool
	UpdateJapanese bool
	Now            func() time.Time
}

// New returns a corrector with the defaults: backups on, mirroring on.
func New(index map[string]finding.Finding, review Reviewer) *Corrector {
	return &Corrector{
		Index:          index,
		Review:         review,
		ADRDir:         "docs/adr",
		CreateBackup:   true,
		UpdateJapanese: true,
		Now:            time.Now,
	}
}

// edit is one applied (evidence -> replacement) substitution, kept so the
// same textual change can be re-applied to the translation mirror.
type edit struct {
	findingID   string
	evidence    string
	replacement string
}

// Apply runs the instructions against the document at path. Per-instruction
// problems (unknown id, evidence gone, overlap) become skips in the result;
// only I/O and contract failures return an error.
func (c *Corrector) Apply(path string, instructions []Instruction) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	text := string(data)

	if c.CreateBackup {
		if err := os.WriteFile(path+".backup", data, 0o644); err != nil {
			return nil, fmt.Errorf("writing backup: %w", err)
		}
	}

	result := &Result{}
	var edits []edit
	var history []historyRow

	for _, inst := range instructions {
		f, ok := c.Index[inst.TargetFindingID]
		if !ok {
			result.RejectedFindings = append(result.RejectedFindings, Rejected{
				FindingID: inst.TargetFindingID,
				Action:    inst.Action,
				Reason:    "unknown finding id",
			})
			continue
		}

		switch inst.Action {
		case ActionAccept, ActionModify:
			replacement := f.Recommendation
			if inst.Action == ActionModify {
				replacement = inst.NewText
			}
			applied, newText := applyEdit(text, f.Evidence, replacement)
			if !applied {
				result.RejectedFindings = append(result.RejectedFindings, Rejected{
					FindingID: f.ID,
					Action:    inst.Action,
					Reason:    "evidence-not-found",
				})
				continue
			}
			text = newText
			result.ChangesApplied++
			edits = append(edits, edit{findingID: f.ID, evidence: f.Evidence, replacement: replacement})
			history = append(history, historyRow{findingID: f.ID, category: category(f), action: inst.Action})

		case ActionReject:
			result.RejectedFindings = append(result.RejectedFindings, Rejected{
				FindingID: f.ID,
				Action:    inst.Action,
				Reason:    inst.Reason,
			})
			history = append(history, historyRow{findingID: f.ID, category: category(f), action: inst.Action})

		case ActionRejectWithADR:
			result.RejectedFindings = append(result.RejectedFindings, Rejected{
				FindingID: f.ID,
				Action:    inst.Action,
				Reason:    inst.Reason,
			})
			adrPath, err := c.writeADR(f, inst.Reason)
			if err != nil {
				return nil, err
			}
			result.ADRsCreated = append(result.ADRsCreated, adrPath)
			history = append(history, historyRow{findingID: f.ID, category: category(f), action: inst.Action})

		default:
			return nil, fmt.Errorf("unknown correction action: %s", inst.Action)
		}
	}

	if len(history) > 0 {
		text = appendHistory(text, history, c.Now().UTC())
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}
	result.FilesModified = append(result.FilesModified, path)

	if c.UpdateJapanese {
		if err := c.mirrorEdits(path, edits, result); err != nil {
			return nil, err
		}
	}

	if c.Review != nil {
		reviewed := c.Review(artifact.File{Path: path, Text: text, Lines: strings.Count(text, "\n") + 1, Bytes: len(text)})
		result.UpdatedQualityGate = reviewed.QualityGate
		result.UpdatedMetrics = reviewed.Metrics
	}

	return result, nil
}

// applyEdit replaces the first occurrence of evidence. Overlapping
// instructions resolve first-wins: once an earlier edit consumed the
// evidence the later one no longer finds it.
func applyEdit(text, evidence, replacement string) (bool, string) {
	if evidence == "" {
		return false, text
	}
	idx := strings.Index(text, evidence)
	if idx < 0 {
		return false, text
	}
	return true, text[:idx] + replacement + text[idx+len(evidence):]
}

// mirrorEdits re-applies the exact substitutions to the sibling .ja.md
// translation. Evidence that the translation does not contain becomes a
// mirror-skip; no translation is attempted.
func (c *Corrector) mirrorEdits(path string, edits []edit, result *Result) error {
	mirror := MirrorPath(path)
	if mirror == "" || len(edits) == 0 {
		return nil
	}
	data, err := os.ReadFile(mirror)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading mirror: %w", err)
	}

	text := string(data)
	modified := false
	for _, e := range edits {
		applied, newText := applyEdit(text, e.evidence, e.replacement)
		if !applied {
			result.MirrorSkips = append(result.MirrorSkips, e.findingID)
			continue
		}
		text = newText
		modified = true
	}

	if modified {
		if err := os.WriteFile(mirror, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing mirror: %w", err)
		}
		result.FilesModified = append(result.FilesModified, mirror)
	}
	return nil
}

// MirrorPath returns the .ja.md sibling for a .md document, or "" when
// the path is not a Markdown file or already a translation.
func MirrorPath(path string) string {
	if strings.HasSuffix(path, ".ja.md") || !strings.HasSuffix(path, ".md") {
		return ""
	}
	return strings.TrimSuffix(path, ".md") + ".ja.md"
}

func category(f finding.Finding) string {
	if f.Category != "" {
		return f.Category
	}
	return string(f.Kind)
}
