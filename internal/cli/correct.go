package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaveldev/gavel/internal/artifact"
	"github.com/gaveldev/gavel/internal/checkpoint"
	"github.com/gaveldev/gavel/internal/correct"
	"github.com/gaveldev/gavel/internal/design"
	"github.com/gaveldev/gavel/internal/finding"
	"github.com/gaveldev/gavel/internal/gitref"
	"github.com/gaveldev/gavel/internal/report"
	"github.com/gaveldev/gavel/internal/requirements"
)

// Correct flags
var (
	flagInstructions string
	flagDocType      string
	flagADRDir       string
	flagNoBackup     bool
	flagNoJapanese   bool
	flagCheckpoint   bool
)

var correctCmd = &cobra.Command{
	Use:   "correct <path>",
	Short: "Apply correction instructions to a reviewed document",
	Long: `Correct re-reviews the document, resolves each instruction's finding by
id, and applies accept/modify/reject/reject-with-adr actions. Results
print as JSON including the updated quality gate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		instructions, err := loadInstructions(flagInstructions)
		if err != nil {
			fail("correct", err)
			return nil
		}

		file, err := artifact.LoadFile(path)
		if err != nil {
			fail("correct", err)
			return nil
		}

		reviewer, err := reviewerFor(flagDocType)
		if err != nil {
			fail("correct", err)
			return nil
		}

		// The index comes from reviewing the document as it is now; the
		// instructions reference these ids.
		index := reviewer(file).Index()

		if flagCheckpoint {
			if err := snapshotBeforeCorrection(path); err != nil {
				fail("correct", err)
				return nil
			}
		}

		c := correct.New(index, reviewer)
		c.ADRDir = flagADRDir
		c.CreateBackup = !flagNoBackup
		c.UpdateJapanese = !flagNoJapanese

		result, err := c.Apply(path, instructions)
		if err != nil {
			fail("correct", err)
			return nil
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fail("correct", err)
			return nil
		}
		fmt.Fprintln(os.Stdout, string(out))

		if !result.UpdatedQualityGate.Passed {
			exitCode = report.ExitViolations
		}
		return nil
	},
}

// loadInstructions accepts either a path to a JSON file or inline JSON.
func loadInstructions(arg string) ([]correct.Instruction, error) {
	if arg == "" {
		return nil, fmt.Errorf("--instructions is required")
	}
	data := []byte(arg)
	if _, err := os.Stat(arg); err == nil {
		data, err = os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("reading instructions: %w", err)
		}
	}
	var instructions []correct.Instruction
	if err := json.Unmarshal(data, &instructions); err != nil {
		return nil, fmt.Errorf("parsing instructions: %w", err)
	}
	return instructions, nil
}

func reviewerFor(docType string) (correct.Reviewer, error) {
	switch docType {
	case "requirements":
		return func(f artifact.File) *finding.ReviewResult {
			return requirements.Review(f, requirements.Options{})
		}, nil
	case "design":
		return func(f artifact.File) *finding.ReviewResult {
			return design.Review(f, design.Options{})
		}, nil
	default:
		return nil, fmt.Errorf("unknown document type: %s", docType)
	}
}

func snapshotBeforeCorrection(path string) error {
	store, err := checkpoint.NewStore(checkpoint.DefaultDir)
	if err != nil {
		return err
	}
	opts := checkpoint.Options{Level: checkpoint.LevelFile, Label: "before correct " + path}
	if meta, err := gitref.GetMeta(); err == nil {
		opts.Commit = meta.Head
	}
	paths := []string{path}
	if mirror := correct.MirrorPath(path); mirror != "" {
		if _, err := os.Stat(mirror); err == nil {
			paths = append(paths, mirror)
		}
	}
	snap, err := store.Capture(paths, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "checkpoint %s created\n", snap.ID)
	return nil
}

func init() {
	correctCmd.Flags().StringVar(&flagInstructions, "instructions", "", "Correction instructions (JSON file path or inline JSON)")
	correctCmd.Flags().StringVar(&flagDocType, "type", "requirements", "Document type (requirements, design)")
	correctCmd.Flags().StringVar(&flagADRDir, "adr-dir", "docs/adr", "Directory for generated ADR stubs")
	correctCmd.Flags().BoolVar(&flagNoBackup, "no-backup", false, "Skip the .backup copy")
	correctCmd.Flags().BoolVar(&flagNoJapanese, "no-japanese", false, "Skip mirroring edits to the .ja.md translation")
	correctCmd.Flags().BoolVar(&flagCheckpoint, "checkpoint", false, "Snapshot the document before applying corrections")
}
