package gate

import (
	"fmt"

	"github.com/gaveldev/gavel/internal/finding"
)

// Options selects and parameterises the criteria a gate applies. Nil
// pointer fields disable the corresponding criterion.
type Options struct {
	MaxCritical        *int
	MaxMajorRatio      *float64
	MinTestability     *float64
	MinEARS            *float64
	RequireSOLID       bool
	NoCriticalSecurity bool
}

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

// RequirementsDefaults is the default gate for requirements reviews: no
// critical findings, majors capped at 20%, testability at least 0.7, EARS
// compliance at least 0.8.
func RequirementsDefaults() Options {
	return Options{
		MaxCritical:    intPtr(0),
		MaxMajorRatio:  floatPtr(0.2),
		MinTestability: floatPtr(0.7),
		MinEARS:        floatPtr(0.8),
	}
}

// DesignDefaults is the default gate for design reviews.
func DesignDefaults() Options {
	return Options{
		MaxCritical:        intPtr(0),
		MaxMajorRatio:      floatPtr(0.2),
		RequireSOLID:       true,
		NoCriticalSecurity: true,
	}
}

// Evaluate applies the enabled criteria in a fixed order and returns the
// gate. The gate passes iff every criterion passes.
func Evaluate(m finding.Metrics, findings []finding.Finding, opts Options) finding.QualityGate {
	g := finding.QualityGate{Passed: true}
	add := func(c finding.Criterion) {
		g.Criteria = append(g.Criteria, c)
		if !c.Passed {
			g.Passed = false
		}
	}

	if opts.MaxCritical != nil {
		actual := float64(m.BySeverity[finding.SeverityCritical])
		add(finding.Criterion{
			Name:      "No Critical Findings",
			Passed:    int(actual) <= *opts.MaxCritical,
			Actual:    actual,
			Threshold: float64(*opts.MaxCritical),
		})
	}

	if opts.MaxMajorRatio != nil {
		ratio := 0.0
		if m.Total > 0 {
			ratio = float64(m.BySeverity[finding.SeverityHigh]) / float64(m.Total)
		}
		add(finding.Criterion{
			Name:      fmt.Sprintf("Major Findings <= %.0f%%", *opts.MaxMajorRatio*100),
			Passed:    ratio <= *opts.MaxMajorRatio,
			Actual:    ratio,
			Threshold: *opts.MaxMajorRatio,
		})
	}

	if opts.MinTestability != nil {
		add(finding.Criterion{
			Name:      fmt.Sprintf("Testability >= %.2f", *opts.MinTestability),
			Passed:    m.TestabilityScore >= *opts.MinTestability,
			Actual:    m.TestabilityScore,
			Threshold: *opts.MinTestability,
		})
	}

	if opts.MinEARS != nil {
		add(finding.Criterion{
			Name:      fmt.Sprintf("EARS Compliance >= %.2f", *opts.MinEARS),
			Passed:    m.EARSCompliance >= *opts.MinEARS,
			Actual:    m.EARSCompliance,
			Threshold: *opts.MinEARS,
		})
	}

	if opts.RequireSOLID {
		nonCompliant := 0
		for _, ok := range m.SOLIDCompliance {
			if !ok {
				nonCompliant++
			}
		}
		add(finding.Criterion{
			Name:      "SOLID Principles Compliant",
			Passed:    nonCompliant == 0,
			Actual:    float64(nonCompliant),
			Threshold: 0,
		})
	}

	if opts.NoCriticalSecurity {
		count := 0
		for _, f := range findings {
			if f.Category == "security" && f.Severity == finding.SeverityCritical {
				count++
			}
		}
		add(finding.Criterion{
			Name:      "No Critical Security Issues",
			Passed:    count == 0,
			Actual:    float64(count),
			Threshold: 0,
		})
	}

	return g
}
