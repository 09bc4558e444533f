package constitution

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gaveldev/gavel/internal/artifact"
	"github.com/gaveldev/gavel/internal/finding"
	"github.com/gaveldev/gavel/internal/rulebook"
)

// Checker runs the constitutional articles over source files.
type Checker struct {
	Book *rulebook.Book
	Ctx  rulebook.Context
}

// New creates a checker bound to a rule book and resolution context.
func New(book *rulebook.Book, ctx rulebook.Context) *Checker {
	return &Checker{Book: book, Ctx: ctx}
}

// FileResult holds the findings for one checked file.
type FileResult struct {
	Path     string            `json:"path"`
	Passed   bool              `json:"passed"`
	Failed   bool              `json:"failed,omitempty"` // load failure, not a violation
	Findings []finding.Finding `json:"findings"`
}

// Summary aggregates a batch of file results.
type Summary struct {
	FilesChecked        int            `json:"filesChecked"`
	FilesPassed         int            `json:"filesPassed"`
	FilesFailed         int            `json:"filesFailed"`
	TotalViolations     int            `json:"totalViolations"`
	ViolationsByArticle map[string]int `json:"violationsByArticle"`
}

// CheckReport is the full output of a constitutional run.
type CheckReport struct {
	Results []FileResult `json:"results"`
	Summary Summary      `json:"summary"`
}

// CheckFiles checks each loaded file in order and aggregates the summary.
// Output is deterministic for identical inputs.
func (c *Checker) CheckFiles(files []artifact.File) *CheckReport {
	report := &CheckReport{
		Summary: Summary{ViolationsByArticle: make(map[string]int)},
	}
	ids := finding.NewIDGen("CV")
	for _, f := range files {
		result := c.checkFile(f, ids)
		report.Results = append(report.Results, result)
		report.Summary.FilesChecked++
		if result.Passed {
			report.Summary.FilesPassed++
		} else {
			report.Summary.FilesFailed++
		}
		report.Summary.TotalViolations += len(result.Findings)
		for _, v := range result.Findings {
			report.Summary.ViolationsByArticle[v.Article]++
		}
	}
	return report
}

// SortByPath orders the per-file results by path so reports stay
// diff-stable no matter how the batch was assembled.
func (r *CheckReport) SortByPath() {
	sort.Slice(r.Results, func(i, j int) bool {
		return r.Results[i].Path < r.Results[j].Path
	})
}

// MarkPassed appends a clean entry for a file whose content already
// passed a previous run and was skipped.
func (r *CheckReport) MarkPassed(path string) {
	r.Results = append(r.Results, FileResult{Path: path, Passed: true})
	r.Summary.FilesChecked++
	r.Summary.FilesPassed++
}

// MarkFailed appends a load-failure entry so the batch summary accounts
// for unreadable files.
func (r *CheckReport) MarkFailed(path string) {
	r.Results = append(r.Results, FileResult{Path: path, Failed: true})
	r.Summary.FilesChecked++
	r.Summary.FilesFailed++
}

func (c *Checker) checkFile(f artifact.File, ids *finding.IDGen) FileResult {
	var findings []finding.Finding
	findings = append(findings, c.checkArticleI(f, ids)...)
	findings = append(findings, c.checkArticleIII(f, ids)...)
	findings = append(findings, c.checkArticleVII(f, ids)...)
	findings = append(findings, c.checkArticleVIII(f, ids)...)
	findings = append(findings, c.checkArticleIX(f, ids)...)

	return FileResult{
		Path:     f.Path,
		Passed:   len(findings) == 0,
		Findings: findings,
	}
}

// Article I: the file must reference at least one requirement id.
func (c *Checker) checkArticleI(f artifact.File, ids *finding.IDGen) []finding.Finding {
	if isArticleIExempt(f.Path) {
		return nil
	}
	if requirementRefPattern.MatchString(f.Text) {
		return nil
	}
	return []finding.Finding{{
		ID:             ids.Next(),
		Article:        rulebook.ArticleI,
		Severity:       finding.SeverityMedium,
		Kind:           finding.KindMissing,
		Category:       "constitution",
		Title:          "No requirement reference",
		Description:    "The file does not reference any requirement id (REQ-, FR-, NFR-, UC-).",
		Recommendation: "Add a comment linking the code to the requirement it implements, e.g. // REQ-042.",
		Location:       finding.Location{Path: f.Path, Line: 1},
		Status:         finding.StatusOpen,
	}}
}

// Article III: a non-test source file must have a co-located test file.
func (c *Checker) checkArticleIII(f artifact.File, ids *finding.IDGen) []finding.Finding {
	if IsTestFile(f.Path) {
		return nil
	}
	for _, candidate := range derivedTestPaths(f.Path) {
		if _, err := os.Stat(candidate); err == nil {
			return nil
		}
	}
	return []finding.Finding{{
		ID:             ids.Next(),
		Article:        rulebook.ArticleIII,
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindMissing,
		Category:       "constitution",
		Title:          "Missing co-located test",
		Description:    fmt.Sprintf("No test file found for %s at any of the derived locations.", filepath.Base(f.Path)),
		Recommendation: "Create a sibling test file (e.g. " + testSuggestion(f.Path) + ") covering this file.",
		Location:       finding.Location{Path: f.Path, Line: 1},
		Status:         finding.StatusOpen,
	}}
}

// Article VII: simplicity thresholds on file length, function length, and
// import count.
func (c *Checker) checkArticleVII(f artifact.File, ids *finding.IDGen) []finding.Finding {
	var findings []finding.Finding

	maxFile := c.Book.ConfigInt("max_file_lines", c.Ctx, 500)
	if f.Lines > maxFile {
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Article:        rulebook.ArticleVII,
			Severity:       finding.SeverityHigh,
			Kind:           finding.KindNonCompliant,
			Category:       "constitution",
			Title:          "File too long",
			Description:    fmt.Sprintf("File has %d lines; the limit is %d.", f.Lines, maxFile),
			Recommendation: "Split the file along its responsibilities.",
			Location:       finding.Location{Path: f.Path, Line: 1},
			Status:         finding.StatusOpen,
		})
	}

	maxFunc := c.Book.ConfigInt("max_function_lines", c.Ctx, 50)
	for _, span := range scanFunctions(f.Text) {
		if span.Lines <= maxFunc {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Article:        rulebook.ArticleVII,
			Severity:       finding.SeverityMedium,
			Kind:           finding.KindNonCompliant,
			Category:       "constitution",
			Title:          "Function too long",
			Description:    fmt.Sprintf("Function %q spans roughly %d lines; the limit is %d.", span.Name, span.Lines, maxFunc),
			Evidence:       span.Name,
			Recommendation: fmt.Sprintf("Extract helpers from %q until it fits within %d lines.", span.Name, maxFunc),
			Location:       finding.Location{Path: f.Path, Line: span.StartLine},
			Status:         finding.StatusOpen,
		})
	}

	maxDeps := c.Book.ConfigInt("max_dependencies", c.Ctx, 10)
	if n := countImports(f.Text); n > maxDeps {
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Article:        rulebook.ArticleVII,
			Severity:       finding.SeverityMedium,
			Kind:           finding.KindNonCompliant,
			Category:       "constitution",
			Title:          "Too many dependencies",
			Description:    fmt.Sprintf("File imports %d modules; the limit is %d.", n, maxDeps),
			Recommendation: "Reduce the import surface or split the file.",
			Location:       finding.Location{Path: f.Path, Line: 1},
			Status:         finding.StatusOpen,
		})
	}

	return findings
}

// Article VIII: anti-abstraction patterns.
func (c *Checker) checkArticleVIII(f artifact.File, ids *finding.IDGen) []finding.Finding {
	var findings []finding.Finding
	lines := strings.Split(f.Text, "\n")
	for i, line := range lines {
		for _, p := range abstractionPatterns {
			m := p.FindString(line)
			if m == "" {
				continue
			}
			findings = append(findings, finding.Finding{
				ID:             ids.Next(),
				Article:        rulebook.ArticleVIII,
				Severity:       finding.SeverityHigh,
				Kind:           finding.KindNonCompliant,
				Category:       "constitution",
				Title:          "Speculative abstraction",
				Description:    fmt.Sprintf("Abstraction pattern %q found; prefer concrete implementations until a second use exists.", m),
				Evidence:       m,
				Recommendation: "Inline the abstraction or justify it with an ADR.",
				Location:       finding.Location{Path: f.Path, Line: i + 1},
				Status:         finding.StatusOpen,
			})
			break
		}
	}
	return findings
}

// Article IX: structured documentation. Test files exempt.
func (c *Checker) checkArticleIX(f artifact.File, ids *finding.IDGen) []finding.Finding {
	if IsTestFile(f.Path) {
		return nil
	}
	if matchesAny(docMarkerPatterns, f.Text) || docKeywordPattern.MatchString(f.Text) {
		return nil
	}
	return []finding.Finding{{
		ID:             ids.Next(),
		Article:        rulebook.ArticleIX,
		Severity:       finding.SeverityLow,
		Kind:           finding.KindMissing,
		Category:       "constitution",
		Title:          "Missing structured documentation",
		Description:    "The file carries no documentation markers or description keywords.",
		Recommendation: "Add a header comment describing the file's purpose.",
		Location:       finding.Location{Path: f.Path, Line: 1},
		Status:         finding.StatusOpen,
	}}
}

// derivedTestPaths lists where Article III expects a test for the given
// source file: sibling .test/.spec/_test files, a __tests__ directory, and
// the src/→tests/ mirror.
func derivedTestPaths(path string) []string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidates := []string{
		filepath.Join(dir, stem+".test"+ext),
		filepath.Join(dir, stem+".spec"+ext),
		filepath.Join(dir, stem+"_test"+ext),
		filepath.Join(dir, "__tests__", stem+".test"+ext),
	}
	slashed := filepath.ToSlash(path)
	if strings.Contains(slashed, "/src/") {
		mirror := strings.Replace(slashed, "/src/", "/tests/", 1)
		mdir := filepath.Dir(filepath.FromSlash(mirror))
		candidates = append(candidates,
			filepath.Join(mdir, stem+".test"+ext),
			filepath.Join(mdir, stem+"_test"+ext),
		)
	}
	return candidates
}

func testSuggestion(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	if ext == ".go" {
		return stem + "_test" + ext
	}
	return stem + ".test" + ext
}
