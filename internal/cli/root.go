package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gaveldev/gavel/internal/report"
)

const version = "0.3.0"

// ErrorsDir is where execution failures are persisted for later triage.
const ErrorsDir = "storage/errors"

var rootCmd = &cobra.Command{
	Use:   "gavel",
	Short: "Specification governance and review CLI",
	Long:  "Gavel validates source trees against constitutional rules and reviews requirements and design documents, with deterministic exit codes for CI gating.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(correctCmd)
	rootCmd.AddCommand(checkpointCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return report.ExitError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = report.ExitOK

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print gavel version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "gavel version %s\n", version)
	},
}

// fail reports an execution error (as opposed to a validation outcome):
// it prints to stderr, persists an error report for triage, and sets exit
// code 2.
func fail(command string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = report.ExitError
	persistError(command, err)
}

type errorReport struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Command   string    `json:"command"`
	Error     string    `json:"error"`
}

// persistError is best effort; a failure to record a failure is only
// mentioned, never escalated.
func persistError(command string, cause error) {
	if err := os.MkdirAll(ErrorsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot persist error report: %v\n", err)
		return
	}
	rec := errorReport{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Command:   command,
		Error:     cause.Error(),
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return
	}
	path := filepath.Join(ErrorsDir, "error-"+rec.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot persist error report: %v\n", err)
	}
}
