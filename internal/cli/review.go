package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaveldev/gavel/internal/artifact"
	"github.com/gaveldev/gavel/internal/design"
	"github.com/gaveldev/gavel/internal/finding"
	"github.com/gaveldev/gavel/internal/report"
	"github.com/gaveldev/gavel/internal/requirements"
	"github.com/gaveldev/gavel/internal/scrub"
)

// Review flags
var (
	flagMethod       string
	flagPerspectives string
	flagFocus        string
	flagReviewOutput string
	flagReviewOut    string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a requirements or design document",
}

var reviewRequirementsCmd = &cobra.Command{
	Use:   "requirements <path>",
	Short: "Review a requirements document (Fagan inspection and PBR)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := artifact.LoadFile(args[0])
		if err != nil {
			fail("review requirements", err)
			return nil
		}

		method := requirements.Method(flagMethod)
		switch method {
		case requirements.MethodFagan, requirements.MethodPBR, requirements.MethodCombined:
		default:
			fail("review requirements", fmt.Errorf("unknown method: %s", flagMethod))
			return nil
		}

		perspectives, err := parsePerspectives(flagPerspectives)
		if err != nil {
			fail("review requirements", err)
			return nil
		}

		result := requirements.Review(file, requirements.Options{
			Method:       method,
			Perspectives: perspectives,
		})
		emitReview(result, "review requirements")
		return nil
	},
}

var reviewDesignCmd = &cobra.Command{
	Use:   "design <path>",
	Short: "Review a design document (SOLID, patterns, security, C4, ADR)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := artifact.LoadFile(args[0])
		if err != nil {
			fail("review design", err)
			return nil
		}

		focuses := design.ParseFocuses(flagFocus)
		for _, f := range focuses {
			if !design.ValidFocus(f) {
				fail("review design", fmt.Errorf("unknown focus: %s", f))
				return nil
			}
		}

		result := design.Review(file, design.Options{Focuses: focuses})
		emitReview(result, "review design")
		return nil
	},
}

func emitReview(result *finding.ReviewResult, command string) {
	scrub.Findings(result.Findings, flagScrubPaths)

	var w io.Writer = os.Stdout
	if flagReviewOut != "" {
		f, err := os.Create(flagReviewOut)
		if err != nil {
			fail(command, fmt.Errorf("creating output file: %w", err))
			return
		}
		defer f.Close()
		w = f
	}

	if err := report.WriteReview(w, result, flagReviewOutput); err != nil {
		fail(command, err)
		return
	}

	if !result.QualityGate.Passed {
		exitCode = report.ExitViolations
	}
}

func parsePerspectives(s string) ([]finding.Perspective, error) {
	if s == "" {
		return nil, nil
	}
	known := make(map[finding.Perspective]bool, len(finding.AllPerspectives))
	for _, p := range finding.AllPerspectives {
		known[p] = true
	}
	var out []finding.Perspective
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p := finding.Perspective(strings.ToLower(part))
		if !known[p] {
			return nil, fmt.Errorf("unknown perspective: %s", part)
		}
		out = append(out, p)
	}
	return out, nil
}

func init() {
	reviewCmd.AddCommand(reviewRequirementsCmd)
	reviewCmd.AddCommand(reviewDesignCmd)

	reviewCmd.PersistentFlags().StringVar(&flagReviewOutput, "output", "markdown", "Output format (markdown, json)")
	reviewCmd.PersistentFlags().StringVar(&flagReviewOut, "out", "", "Output file path (default: stdout)")
	reviewCmd.PersistentFlags().StringSliceVar(&flagScrubPaths, "scrub-path", nil, "Globs whose evidence is withheld from reports")

	reviewRequirementsCmd.Flags().StringVar(&flagMethod, "method", "combined", "Review method (fagan, pbr, combined)")
	reviewRequirementsCmd.Flags().StringVar(&flagPerspectives, "perspectives", "", "PBR perspectives (comma-separated; default all)")

	reviewDesignCmd.Flags().StringVar(&flagFocus, "focus", "", "Review dimensions (comma-separated; default all)")
}
