package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gaveldev/gavel/internal/constitution"
)

// JSONWriter outputs the report as JSON with a stable envelope so CI
// scripts can parse it without tracking internal struct changes.
type JSONWriter struct{}

type jsonEnvelope struct {
	Version    string               `json:"version"`
	Timestamp  time.Time            `json:"timestamp"`
	Mode       string               `json:"mode"`
	Summary    constitution.Summary `json:"summary"`
	Status     jsonStatus           `json:"status"`
	Violations []Violation          `json:"violations"`
	ExitCode   int                  `json:"exitCode"`
}

type jsonStatus struct {
	Blocked               bool   `json:"blocked"`
	RequiresPhaseMinusOne bool   `json:"requiresPhaseMinusOne"`
	RequiresGateReview    bool   `json:"requiresGateReview"`
	Reason                string `json:"reason,omitempty"`
}

func (j *JSONWriter) Write(w io.Writer, report *Report) error {
	violations := report.Violations()
	if violations == nil {
		violations = []Violation{}
	}
	envelope := jsonEnvelope{
		Version:   report.Version,
		Timestamp: report.Timestamp,
		Mode:      report.Mode,
		Summary:   report.Check.Summary,
		Status: jsonStatus{
			Blocked:               report.Decision.ShouldBlock,
			RequiresPhaseMinusOne: report.Decision.RequiresPhaseMinusOne,
			RequiresGateReview:    report.Decision.RequiresGateReview,
			Reason:                report.Decision.Reason,
		},
		Violations: violations,
		ExitCode:   report.ExitCode(false),
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
