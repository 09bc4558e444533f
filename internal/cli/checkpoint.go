package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaveldev/gavel/internal/checkpoint"
	"github.com/gaveldev/gavel/internal/gitref"
)

// Checkpoint flags
var (
	flagCheckpointLevel string
	flagCheckpointLabel string
	flagCheckpointDir   string
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Manage by-value file snapshots",
}

var checkpointCreateCmd = &cobra.Command{
	Use:   "create <path>...",
	Short: "Snapshot files so they can be rolled back later",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := checkpoint.NewStore(flagCheckpointDir)
		if err != nil {
			fail("checkpoint create", err)
			return nil
		}

		opts := checkpoint.Options{
			Level: checkpoint.Level(flagCheckpointLevel),
			Label: flagCheckpointLabel,
		}
		if meta, err := gitref.GetMeta(); err == nil {
			opts.Commit = meta.Head
		}

		snap, err := store.Capture(args, opts)
		if err != nil {
			fail("checkpoint create", err)
			return nil
		}
		fmt.Fprintf(os.Stdout, "checkpoint %s created (%d file(s), level %s)\n",
			snap.ID, len(snap.Files), snap.Level)
		return nil
	},
}

var checkpointListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := checkpoint.NewStore(flagCheckpointDir)
		if err != nil {
			fail("checkpoint list", err)
			return nil
		}
		snaps, err := store.List()
		if err != nil {
			fail("checkpoint list", err)
			return nil
		}
		if len(snaps) == 0 {
			fmt.Fprintln(os.Stdout, "No checkpoints.")
			return nil
		}
		for _, snap := range snaps {
			label := snap.Label
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(os.Stdout, "%s  %s  %-6s  %d file(s)  %s\n",
				snap.ID, snap.CreatedAt.Format("2006-01-02 15:04:05"), snap.Level, len(snap.Files), label)
		}
		return nil
	},
}

var checkpointRollbackCmd = &cobra.Command{
	Use:   "rollback <id>",
	Short: "Restore the files of a snapshot verbatim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := checkpoint.NewStore(flagCheckpointDir)
		if err != nil {
			fail("checkpoint rollback", err)
			return nil
		}
		rep, err := store.Rollback(args[0])
		if err != nil {
			fail("checkpoint rollback", err)
			return nil
		}
		fmt.Fprintf(os.Stdout, "rollback %s restored %d file(s):\n", rep.ID, len(rep.RestoredFiles))
		for _, path := range rep.RestoredFiles {
			fmt.Fprintf(os.Stdout, "  %s\n", path)
		}
		return nil
	},
}

func init() {
	checkpointCmd.AddCommand(checkpointCreateCmd)
	checkpointCmd.AddCommand(checkpointListCmd)
	checkpointCmd.AddCommand(checkpointRollbackCmd)

	checkpointCmd.PersistentFlags().StringVar(&flagCheckpointDir, "dir", checkpoint.DefaultDir, "Snapshot storage directory")
	checkpointCreateCmd.Flags().StringVar(&flagCheckpointLevel, "level", string(checkpoint.LevelFile), "Granularity (file, commit, stage, sprint)")
	checkpointCreateCmd.Flags().StringVar(&flagCheckpointLabel, "label", "", "Human-readable label")
}
