package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const (
	hookMarkerStart = "# >>> gavel pre-commit hook >>>"
	hookMarkerEnd   = "# <<< gavel pre-commit hook <<<"
)

var (
	hookStrict bool
	hookFormat string
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git pre-commit hook",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install gavel as a git pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := getHookPath()
		if err != nil {
			fail("hook install", err)
			return nil
		}

		section := generateHookScript(hookStrict, hookFormat)

		existing, err := os.ReadFile(hookPath)
		if err != nil && !os.IsNotExist(err) {
			fail("hook install", fmt.Errorf("reading hook file: %w", err))
			return nil
		}

		var content string
		if os.IsNotExist(err) || len(existing) == 0 {
			// No existing hook — create new file
			content = "#!/bin/sh\n" + section
		} else {
			content = replaceGavelSection(string(existing), section)
		}

		if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
			fail("hook install", fmt.Errorf("creating hooks directory: %w", err))
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			fail("hook install", fmt.Errorf("writing hook file: %w", err))
			return nil
		}

		fmt.Fprintf(os.Stdout, "Installed gavel pre-commit hook at %s\n", hookPath)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the gavel pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := getHookPath()
		if err != nil {
			fail("hook uninstall", err)
			return nil
		}

		existing, err := os.ReadFile(hookPath)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(os.Stdout, "No pre-commit hook found.")
				return nil
			}
			fail("hook uninstall", fmt.Errorf("reading hook file: %w", err))
			return nil
		}

		content := removeGavelSection(string(existing))

		// If only shebang (and whitespace) remains, delete the file entirely
		trimmed := strings.TrimSpace(content)
		if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
			if err := os.Remove(hookPath); err != nil {
				fail("hook uninstall", fmt.Errorf("removing hook file: %w", err))
				return nil
			}
			fmt.Fprintf(os.Stdout, "Removed gavel pre-commit hook at %s\n", hookPath)
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			fail("hook uninstall", fmt.Errorf("writing hook file: %w", err))
			return nil
		}

		fmt.Fprintf(os.Stdout, "Removed gavel section from %s\n", hookPath)
		return nil
	},
}

func getHookPath() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--git-dir").Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository (git rev-parse --git-dir failed)")
	}
	gitDir := strings.TrimSpace(string(out))
	return filepath.Join(gitDir, "hooks", "pre-commit"), nil
}

func generateHookScript(strict bool, format string) string {
	cmdline := fmt.Sprintf("gavel validate --staged --output %s", format)
	if strict {
		cmdline += " --strict"
	}

	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	b.WriteString(cmdline + "\n")
	b.WriteString("GAVEL_EXIT=$?\n")
	b.WriteString("if [ $GAVEL_EXIT -eq 1 ]; then\n")
	b.WriteString("  echo \"gavel: constitutional violations block this commit\"\n")
	b.WriteString("  exit 1\n")
	b.WriteString("elif [ $GAVEL_EXIT -ge 2 ]; then\n")
	b.WriteString("  echo \"gavel: warning — validation encountered an error (exit $GAVEL_EXIT), allowing commit\"\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func replaceGavelSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		// No existing gavel section — append
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	// Replace existing section
	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	// Trim leading newline from after to avoid double newlines
	after = strings.TrimPrefix(after, "\n")
	return before + section + after
}

func removeGavelSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	after = strings.TrimPrefix(after, "\n")

	return before + after
}

func init() {
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	hookInstallCmd.Flags().BoolVar(&hookStrict, "strict", false, "Block the commit on any violation")
	hookInstallCmd.Flags().StringVar(&hookFormat, "format", "text", "Output format for the hook run (text, json, ci, junit)")
}
