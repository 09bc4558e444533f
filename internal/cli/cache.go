package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaveldev/gavel/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the clean-file validation cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached verdicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.New(true, "", cache.DefaultTTLSeconds)
		if err != nil {
			fail("cache clear", err)
			return nil
		}
		if err := store.Clear(); err != nil {
			fail("cache clear", err)
			return nil
		}
		fmt.Fprintf(os.Stdout, "Cleared cache at %s\n", store.Dir())
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print cache statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.New(true, "", cache.DefaultTTLSeconds)
		if err != nil {
			fail("cache stats", err)
			return nil
		}
		stats, err := store.GetStats()
		if err != nil {
			fail("cache stats", err)
			return nil
		}
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			fail("cache stats", err)
			return nil
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
}
