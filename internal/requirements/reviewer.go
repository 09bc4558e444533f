package requirements

import (
	"time"

	"github.com/gaveldev/gavel/internal/artifact"
	"github.com/gaveldev/gavel/internal/finding"
	"github.com/gaveldev/gavel/internal/gate"
)

// Method selects the review passes to run.
type Method string

const (
	MethodFagan    Method = "fagan"
	MethodPBR      Method = "pbr"
	MethodCombined Method = "combined"
)

// Options configures a requirements review.
type Options struct {
	Method       Method
	Perspectives []finding.Perspective // empty means all five
	Gate         *gate.Options         // nil means the requirements defaults
	Now          func() time.Time      // injectable for deterministic reports
}

// Review runs the configured passes over a loaded requirements document.
func Review(file artifact.File, opts Options) *finding.ReviewResult {
	if opts.Method == "" {
		opts.Method = MethodCombined
	}
	if len(opts.Perspectives) == 0 {
		opts.Perspectives = finding.AllPerspectives
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	reqs := Extract(file.Text)
	var findings []finding.Finding

	switch opts.Method {
	case MethodFagan:
		findings = faganReview(file.Path, file.Text, reqs, finding.NewIDGen("FAG"))
	case MethodPBR:
		findings = pbrReview(file.Path, file.Text, opts.Perspectives, finding.NewIDGen("PBR"))
	default:
		fagan := faganReview(file.Path, file.Text, reqs, finding.NewIDGen("FAG"))
		pbr := pbrReview(file.Path, file.Text, opts.Perspectives, finding.NewIDGen("PBR"))
		findings = dedupe(append(fagan, pbr...))
	}

	metrics := finding.ComputeMetrics(findings)
	metrics.EARSCompliance = earsCompliance(reqs)
	metrics.TestabilityScore = testabilityScore(reqs)
	metrics.ReviewCoverage = reviewCoverage(opts.Method, opts.Perspectives)

	gateOpts := gate.RequirementsDefaults()
	if opts.Gate != nil {
		gateOpts = *opts.Gate
	}

	return &finding.ReviewResult{
		DocumentPath: file.Path,
		Findings:     findings,
		Metrics:      metrics,
		QualityGate:  gate.Evaluate(metrics, findings, gateOpts),
		Timestamp:    now().UTC(),
	}
}

// dedupe collapses findings that share (requirement id, kind, title).
// Differently-worded concerns from two perspectives survive; that is
// intentional for traceability.
func dedupe(findings []finding.Finding) []finding.Finding {
	type key struct {
		req   string
		kind  finding.Kind
		title string
	}
	seen := make(map[key]bool, len(findings))
	out := findings[:0]
	for _, f := range findings {
		k := key{f.RequirementID, f.Kind, f.Title}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	return out
}

// earsCompliance is the ratio of requirements matching an EARS template.
// An empty document is vacuously compliant.
func earsCompliance(reqs []Requirement) float64 {
	if len(reqs) == 0 {
		return 1.0
	}
	matching := 0
	for _, r := range reqs {
		if _, ok := ClassifyEARS(r.Text); ok {
			matching++
		}
	}
	return float64(matching) / float64(len(reqs))
}

// Testability weights: number 0.3, unit 0.3, quantifier 0.2, absence of
// ambiguous terms 0.2. A requirement scoring at least 0.5 counts as
// testable.
const testableCutoff = 0.5

func requirementTestability(r Requirement) float64 {
	score := 0.0
	if numberPattern.MatchString(r.FullText) {
		score += 0.3
	}
	if unitPattern.MatchString(r.FullText) {
		score += 0.3
	}
	if quantifierPattern.MatchString(r.FullText) {
		score += 0.2
	}
	ambiguous := false
	for _, term := range ambiguousTerms {
		if containsTerm(r.FullText, term) {
			ambiguous = true
			break
		}
	}
	if !ambiguous {
		score += 0.2
	}
	return score
}

func testabilityScore(reqs []Requirement) float64 {
	if len(reqs) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, r := range reqs {
		sum += requirementTestability(r)
	}
	return sum / float64(len(reqs))
}

// reviewCoverage is perspectives-used over five. Fagan is
// perspective-agnostic and counts as full coverage.
func reviewCoverage(method Method, perspectives []finding.Perspective) float64 {
	if method == MethodFagan || method == MethodCombined {
		return 1.0
	}
	return float64(len(perspectives)) / float64(len(finding.AllPerspectives))
}
