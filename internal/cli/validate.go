package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaveldev/gavel/internal/artifact"
	"github.com/gaveldev/gavel/internal/cache"
	"github.com/gaveldev/gavel/internal/config"
	"github.com/gaveldev/gavel/internal/constitution"
	"github.com/gaveldev/gavel/internal/gitref"
	"github.com/gaveldev/gavel/internal/report"
	"github.com/gaveldev/gavel/internal/rulebook"
	"github.com/gaveldev/gavel/internal/scrub"
)

// Validate flags
var (
	flagMode        string
	flagPackageType string
	flagStrict      bool
	flagOutput      string
	flagOut         string
	flagMemory      bool
	flagStaged      bool
	flagChanged     bool
	flagFailOn      string
	flagExclude     []string
	flagScrubPaths  []string
	flagNoCache     bool
)

// Source extensions checked by default.
var defaultExts = []string{
	".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".rb", ".rs", ".c", ".cpp", ".cs", ".php",
}

// Directories nobody wants validated.
var defaultExcludes = []string{
	".git/**", "vendor/**", "node_modules/**", "dist/**", "build/**", "storage/**",
}

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Validate source files against the constitutional rules",
	Long: `Validate runs every constitutional article over the given files or
directories (default: the current directory) and reports violations and
the resulting merge decision.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch flagFailOn {
		case "", "none", "low", "medium", "high", "critical":
		default:
			fail("validate", fmt.Errorf("unknown --fail-on severity: %s", flagFailOn))
			return nil
		}
		if flagStaged && flagChanged {
			fail("validate", fmt.Errorf("--staged and --changed are mutually exclusive"))
			return nil
		}

		rep, err := runValidate(args)
		if err != nil {
			fail("validate", err)
			return nil
		}

		if err := report.WriteReport(rep, flagOutput, flagOut); err != nil {
			fail("validate", err)
			return nil
		}

		if flagMemory {
			path, err := report.WriteMemory(config.MemoriesDir, rep)
			if err != nil {
				fail("validate", err)
				return nil
			}
			fmt.Fprintf(os.Stderr, "memory written to %s\n", path)
		}

		exitCode = rep.ExitCode(flagStrict)
		if exitCode == report.ExitOK && rep.AnyAtOrAbove(flagFailOn) {
			exitCode = report.ExitViolations
		}
		return nil
	},
}

func runValidate(args []string) (*report.Report, error) {
	project, err := config.LoadProject(config.DefaultProjectPath)
	if err != nil {
		return nil, err
	}
	book, err := rulebook.Load(config.DefaultLevelsPath)
	if err != nil {
		return nil, err
	}
	book.ApplyOverrides(project.Constitution.Overrides)

	ctx := rulebook.Context{
		Mode:        project.Workflow.Mode,
		PackageType: project.PackageType,
	}
	if flagMode != "" {
		ctx.Mode = flagMode
	}
	if flagPackageType != "" {
		ctx.PackageType = flagPackageType
	}

	files, loadErrs, err := collectFiles(args)
	if err != nil {
		return nil, err
	}

	store, err := cache.New(!flagNoCache, "", cache.DefaultTTLSeconds)
	if err != nil {
		return nil, err
	}

	// Skip files whose content already passed under the same context.
	keys := make(map[string]string, len(files))
	var toCheck []artifact.File
	var cachedClean []string
	for _, f := range files {
		key := cache.BuildKey(ctx.Mode, ctx.PackageType, f.Text)
		if store.Seen(key) {
			cachedClean = append(cachedClean, f.Path)
			continue
		}
		keys[f.Path] = key
		toCheck = append(toCheck, f)
	}

	checker := constitution.New(book, ctx)
	check := checker.CheckFiles(toCheck)
	for _, result := range check.Results {
		if result.Passed {
			if err := store.MarkClean(keys[result.Path]); err != nil {
				fmt.Fprintf(os.Stderr, "warning: caching verdict for %s: %v\n", result.Path, err)
			}
		}
	}
	for _, path := range cachedClean {
		check.MarkPassed(path)
	}
	for _, le := range loadErrs {
		check.MarkFailed(le.Path)
	}
	// Cached and load-failed entries were appended out of order.
	check.SortByPath()

	for i := range check.Results {
		scrub.Findings(check.Results[i].Findings, flagScrubPaths)
	}

	names := make(map[string]string)
	for _, result := range check.Results {
		for _, f := range result.Findings {
			if _, ok := names[f.Article]; !ok {
				names[f.Article] = book.NameOf(f.Article)
			}
		}
	}

	return &report.Report{
		Tool:         "gavel",
		Version:      version,
		Mode:         ctx.Mode,
		PackageType:  ctx.PackageType,
		Timestamp:    time.Now().UTC(),
		Check:        check,
		Decision:     constitution.ShouldBlockMerge(check, book),
		ArticleNames: names,
	}, nil
}

// collectFiles resolves the validate targets: --staged asks git, file
// arguments load directly, directory arguments walk with the default
// extension and exclude sets.
func collectFiles(args []string) ([]artifact.File, []artifact.LoadError, error) {
	exclude := append(append([]string{}, defaultExcludes...), flagExclude...)

	if flagStaged {
		paths, err := gitref.StagedFiles()
		if err != nil {
			return nil, nil, err
		}
		return loadPaths(paths)
	}

	if flagChanged {
		paths, err := gitref.ChangedFiles()
		if err != nil {
			return nil, nil, err
		}
		return loadPaths(paths)
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	var files []artifact.File
	var loadErrs []artifact.LoadError
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if info.IsDir() {
			dirFiles, dirErrs, err := artifact.LoadDir(arg, defaultExts, exclude)
			if err != nil {
				return nil, nil, err
			}
			files = append(files, dirFiles...)
			loadErrs = append(loadErrs, dirErrs...)
			continue
		}
		f, err := artifact.LoadFile(arg)
		if err != nil {
			loadErrs = append(loadErrs, artifact.LoadError{Path: arg, Err: err})
			continue
		}
		files = append(files, f)
	}
	return files, loadErrs, nil
}

func loadPaths(paths []string) ([]artifact.File, []artifact.LoadError, error) {
	var files []artifact.File
	var loadErrs []artifact.LoadError
	for _, path := range paths {
		if !matchAnyExt(path) {
			continue
		}
		f, err := artifact.LoadFile(path)
		if err != nil {
			loadErrs = append(loadErrs, artifact.LoadError{Path: path, Err: err})
			continue
		}
		files = append(files, f)
	}
	return files, loadErrs, nil
}

func matchAnyExt(path string) bool {
	for _, ext := range defaultExts {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

func init() {
	validateCmd.Flags().StringVar(&flagMode, "mode", "", "Workflow mode (small, medium, large)")
	validateCmd.Flags().StringVar(&flagPackageType, "package-type", "", "Package type (cli, service, library, application)")
	validateCmd.Flags().BoolVar(&flagStrict, "strict", false, "Exit 1 on any violation, not only blocking ones")
	validateCmd.Flags().StringVar(&flagOutput, "output", "text", "Output format (text, json, ci, junit)")
	validateCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	validateCmd.Flags().BoolVar(&flagMemory, "memory", false, "Append a Markdown summary under "+config.MemoriesDir)
	validateCmd.Flags().BoolVar(&flagStaged, "staged", false, "Validate only files staged in git")
	validateCmd.Flags().BoolVar(&flagChanged, "changed", false, "Validate only files that differ from HEAD")
	validateCmd.Flags().StringVar(&flagFailOn, "fail-on", "none", "Exit 1 when any finding is at or above this severity (none, low, medium, high, critical)")
	validateCmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "Additional exclude globs")
	validateCmd.Flags().StringSliceVar(&flagScrubPaths, "scrub-path", nil, "Globs whose evidence is withheld from reports")
	validateCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Re-check every file, ignoring the clean-file cache")
}
