package constitution

import (
	"fmt"

	"github.com/gaveldev/gavel/internal/finding"
	"github.com/gaveldev/gavel/internal/rulebook"
)

// BlockDecision is the computed answer to "may this change proceed?".
type BlockDecision struct {
	ShouldBlock           bool   `json:"shouldBlock"`
	Reason                string `json:"reason,omitempty"`
	CriticalCount         int    `json:"criticalCount"`
	HighCount             int    `json:"highCount"`
	RequiresPhaseMinusOne bool   `json:"requiresPhaseMinusOne"`
	RequiresGateReview    bool   `json:"requiresGateReview"`
}

// ShouldBlockMerge derives the merge decision from a check report. The
// merge blocks iff any finding is critical, or any Article VII or VIII
// finding is high or critical (the Phase-minus-one gate). Findings of at
// least high severity on other blocking articles do not block outright but
// request an out-of-band gate review.
func ShouldBlockMerge(report *CheckReport, book *rulebook.Book) BlockDecision {
	var d BlockDecision
	for _, result := range report.Results {
		for _, f := range result.Findings {
			switch f.Severity {
			case finding.SeverityCritical:
				d.CriticalCount++
			case finding.SeverityHigh:
				d.HighCount++
			}

			atLeastHigh := finding.SeverityRank(f.Severity) >= finding.SeverityRank(finding.SeverityHigh)
			simplicityGate := f.Article == rulebook.ArticleVII || f.Article == rulebook.ArticleVIII

			if f.Severity == finding.SeverityCritical {
				d.ShouldBlock = true
			}
			if simplicityGate && atLeastHigh {
				d.ShouldBlock = true
				d.RequiresPhaseMinusOne = true
			}
			if !simplicityGate && atLeastHigh && book != nil && book.IsBlocking(f.Article) {
				d.RequiresGateReview = true
			}
		}
	}

	switch {
	case d.RequiresPhaseMinusOne:
		d.Reason = fmt.Sprintf("simplicity gate: %d high/critical Article VII/VIII violation(s) require Phase -1 review", d.HighCount+d.CriticalCount)
	case d.ShouldBlock:
		d.Reason = fmt.Sprintf("%d critical violation(s)", d.CriticalCount)
	case d.RequiresGateReview:
		d.Reason = "high-severity violations on blocking articles need gate review"
	}
	return d
}
