package design

import (
	"strings"
	"time"

	"github.com/gaveldev/gavel/internal/artifact"
	"github.com/gaveldev/gavel/internal/finding"
	"github.com/gaveldev/gavel/internal/gate"
)

// Focus selects which review dimensions run.
type Focus string

const (
	FocusSOLID    Focus = "solid"
	FocusPatterns Focus = "patterns"
	FocusCoupling Focus = "coupling"
	FocusErrors   Focus = "errors"
	FocusSecurity Focus = "security"
	FocusC4       Focus = "c4"
	FocusADR      Focus = "adr"
	FocusAll      Focus = "all"
)

// AllFocuses in the order dimensions run.
var AllFocuses = []Focus{FocusSOLID, FocusPatterns, FocusCoupling, FocusErrors, FocusSecurity, FocusC4, FocusADR}

// Options configures a design review.
type Options struct {
	// Focuses limits the review to the named dimensions. Empty or
	// containing FocusAll means every dimension.
	Focuses []Focus
	// Gate overrides the default design gate when non-nil.
	Gate *gate.Options
	// Now supplies timestamps; defaults to time.Now.
	Now func() time.Time
}

// Review runs the selected dimensions over a design document and gates
// the result. Finding ids are assigned in discovery order within a single
// DES sequence, so repeated runs over the same input produce identical
// results.
func Review(file artifact.File, opts Options) *finding.ReviewResult {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	ids := finding.NewIDGen("DES")
	active := activeFocuses(opts.Focuses)

	var findings []finding.Finding
	for _, focus := range AllFocuses {
		if !active[focus] {
			continue
		}
		switch focus {
		case FocusSOLID:
			findings = append(findings, reviewSOLID(file.Path, file.Text, ids)...)
		case FocusPatterns:
			findings = append(findings, reviewPatterns(file.Path, file.Text, ids)...)
		case FocusCoupling:
			findings = append(findings, reviewCoupling(file.Path, file.Text, ids)...)
		case FocusErrors:
			findings = append(findings, reviewErrors(file.Path, file.Text, ids)...)
		case FocusSecurity:
			findings = append(findings, reviewSecurity(file.Path, file.Text, ids)...)
		case FocusC4:
			findings = append(findings, reviewC4(file.Path, file.Text, ids)...)
		case FocusADR:
			findings = append(findings, reviewADR(file.Path, file.Text, ids)...)
		}
	}

	metrics := finding.ComputeMetrics(findings)
	if active[FocusSOLID] {
		metrics.SOLIDCompliance = solidCompliance(findings)
	}

	gateOpts := gate.DesignDefaults()
	if opts.Gate != nil {
		gateOpts = *opts.Gate
	}
	if !active[FocusSOLID] {
		gateOpts.RequireSOLID = false
	}

	return &finding.ReviewResult{
		DocumentPath: file.Path,
		Findings:     findings,
		Metrics:      metrics,
		QualityGate:  gate.Evaluate(metrics, findings, gateOpts),
		Timestamp:    now().UTC(),
	}
}

// ParseFocuses converts a comma list like "solid,security" into focuses.
// Unknown names are kept verbatim so the caller can reject them.
func ParseFocuses(s string) []Focus {
	if s == "" {
		return nil
	}
	var out []Focus
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, Focus(strings.ToLower(part)))
	}
	return out
}

// ValidFocus reports whether f names a known dimension.
func ValidFocus(f Focus) bool {
	if f == FocusAll {
		return true
	}
	for _, known := range AllFocuses {
		if f == known {
			return true
		}
	}
	return false
}

func activeFocuses(requested []Focus) map[Focus]bool {
	active := make(map[Focus]bool, len(AllFocuses))
	if len(requested) == 0 {
		for _, f := range AllFocuses {
			active[f] = true
		}
		return active
	}
	for _, f := range requested {
		if f == FocusAll {
			for _, all := range AllFocuses {
				active[all] = true
			}
			return active
		}
		active[f] = true
	}
	return active
}

// solidCompliance marks each principle compliant unless a finding tagged
// with it exists. Principles never checked still report true: absence of
// evidence passes.
func solidCompliance(findings []finding.Finding) map[string]bool {
	compliance := make(map[string]bool, len(AllPrinciples))
	for _, p := range AllPrinciples {
		compliance[p] = true
	}
	for _, f := range findings {
		if f.Category == "solid" {
			compliance[f.Article] = false
		}
	}
	return compliance
}

// lineOf converts a byte offset into a 1-based line number.
func lineOf(doc string, offset int) int {
	return strings.Count(doc[:offset], "\n") + 1
}
