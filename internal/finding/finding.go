package finding

import (
	"fmt"
	"time"
)

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// MeetsThreshold returns true if severity is at or above the threshold.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	return SeverityRank(s) >= SeverityRank(Severity(threshold))
}

// Kind classifies what is wrong with the reviewed artifact.
type Kind string

const (
	KindMissing      Kind = "missing"
	KindIncorrect    Kind = "incorrect"
	KindAmbiguous    Kind = "ambiguous"
	KindConflicting  Kind = "conflicting"
	KindRedundant    Kind = "redundant"
	KindUntestable   Kind = "untestable"
	KindNonCompliant Kind = "non-compliant"
	KindRisk         Kind = "risk"
)

// Perspective identifies the PBR reading role that raised a finding.
type Perspective string

const (
	PerspectiveUser      Perspective = "user"
	PerspectiveDeveloper Perspective = "developer"
	PerspectiveTester    Perspective = "tester"
	PerspectiveArchitect Perspective = "architect"
	PerspectiveSecurity  Perspective = "security"
)

// AllPerspectives lists every PBR perspective in canonical order.
var AllPerspectives = []Perspective{
	PerspectiveUser,
	PerspectiveDeveloper,
	PerspectiveTester,
	PerspectiveArchitect,
	PerspectiveSecurity,
}

// Status tracks a finding through the correction lifecycle.
type Status string

const (
	StatusOpen     Status = "open"
	StatusAccepted Status = "accepted"
	StatusModified Status = "modified"
	StatusRejected Status = "rejected"
)

// Location points at where a finding was detected.
type Location struct {
	Path string `json:"path"`
	Line int    `json:"line,omitempty"`
}

// Finding is the common schema emitted by every reviewer.
type Finding struct {
	ID             string      `json:"id"`
	Article        string      `json:"article,omitempty"`
	Severity       Severity    `json:"severity"`
	Kind           Kind        `json:"kind"`
	Category       string      `json:"category"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Evidence       string      `json:"evidence,omitempty"`
	Recommendation string      `json:"recommendation"`
	Location       Location    `json:"location"`
	Perspective    Perspective `json:"perspective,omitempty"`
	RequirementID  string      `json:"requirementId,omitempty"`
	Status         Status      `json:"status"`
}

// Criterion is one named pass/fail check inside a quality gate.
type Criterion struct {
	Name      string  `json:"name"`
	Passed    bool    `json:"passed"`
	Actual    float64 `json:"actual"`
	Threshold float64 `json:"threshold"`
}

// QualityGate is the aggregate verdict over a review.
type QualityGate struct {
	Passed   bool        `json:"passed"`
	Criteria []Criterion `json:"criteria"`
}

// Metrics aggregates counts and scores over a review's findings.
type Metrics struct {
	Total            int                 `json:"total"`
	BySeverity       map[Severity]int    `json:"bySeverity"`
	ByKind           map[Kind]int        `json:"byKind"`
	ByPerspective    map[Perspective]int `json:"byPerspective,omitempty"`
	ByCategory       map[string]int      `json:"byCategory,omitempty"`
	EARSCompliance   float64             `json:"earsCompliance,omitempty"`
	TestabilityScore float64             `json:"testabilityScore,omitempty"`
	ReviewCoverage   float64             `json:"reviewCoverage,omitempty"`
	SOLIDCompliance  map[string]bool     `json:"solidCompliance,omitempty"`
}

// ReviewResult is what a single reviewer run produces. Findings are owned
// by the result and live only for the run unless serialised to a report.
type ReviewResult struct {
	DocumentPath string       `json:"documentPath"`
	Findings     []Finding    `json:"findings"`
	Metrics      Metrics      `json:"metrics"`
	QualityGate  QualityGate  `json:"qualityGate"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Index returns findings keyed by id. The corrector uses this to resolve
// correction instructions without re-scanning the document.
func (r *ReviewResult) Index() map[string]Finding {
	idx := make(map[string]Finding, len(r.Findings))
	for _, f := range r.Findings {
		idx[f.ID] = f
	}
	return idx
}

// CountSeverities tallies findings by severity.
func CountSeverities(findings []Finding) map[Severity]int {
	m := make(map[Severity]int)
	for _, f := range findings {
		m[f.Severity]++
	}
	return m
}

// ComputeMetrics builds the count-based portion of Metrics. Score fields
// (EARS, testability, coverage, SOLID) are filled in by the reviewers that
// can compute them.
func ComputeMetrics(findings []Finding) Metrics {
	m := Metrics{
		Total:         len(findings),
		BySeverity:    make(map[Severity]int),
		ByKind:        make(map[Kind]int),
		ByPerspective: make(map[Perspective]int),
		ByCategory:    make(map[string]int),
	}
	for _, f := range findings {
		m.BySeverity[f.Severity]++
		m.ByKind[f.Kind]++
		if f.Perspective != "" {
			m.ByPerspective[f.Perspective]++
		}
		if f.Category != "" {
			m.ByCategory[f.Category]++
		}
	}
	return m
}

// IDGen hands out deterministic ids within a category prefix, in the order
// findings are discovered. Reviews are single-threaded so no locking.
type IDGen struct {
	prefix string
	n      int
}

// NewIDGen creates a generator for the given prefix, e.g. "FAG" yields
// FAG-001, FAG-002, …
func NewIDGen(prefix string) *IDGen {
	return &IDGen{prefix: prefix}
}

// Next returns the next id in sequence.
func (g *IDGen) Next() string {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n)
}
