package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gaveldev/gavel/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage project configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective project configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := config.LoadProject(config.DefaultProjectPath)
		if err != nil {
			fail("config show", err)
			return nil
		}
		out, err := yaml.Marshal(project)
		if err != nil {
			fail("config show", err)
			return nil
		}
		fmt.Fprint(os.Stdout, string(out))
		return nil
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade the project file to the current schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		migrated, err := config.Migrate(config.DefaultProjectPath)
		if err != nil {
			fail("config migrate", err)
			return nil
		}
		if migrated {
			fmt.Fprintf(os.Stdout, "Migrated %s to schema 2.0\n", config.DefaultProjectPath)
		} else {
			fmt.Fprintln(os.Stdout, "Already at schema 2.0, nothing to do.")
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configMigrateCmd)
}
