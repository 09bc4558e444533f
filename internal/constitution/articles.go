package constitution

import "regexp"

// Article I — requirement references. A source file must carry at least
// one requirement id unless it is exempt.
var requirementRefPattern = regexp.MustCompile(`\b(REQ|FR|NFR|UC)-\d+\b`)

// Paths exempt from Article I: tests, configuration, indexes, manifests.
var articleIExemptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(_test|\.test|\.spec)\.\w+$`),
	regexp.MustCompile(`(^|/)__tests__/`),
	regexp.MustCompile(`(^|/)tests?/`),
	regexp.MustCompile(`\.(ya?ml|json|toml|ini|env)$`),
	regexp.MustCompile(`(^|/)index\.\w+$`),
	regexp.MustCompile(`(^|/)(package\.json|go\.mod|go\.sum|Cargo\.toml|Makefile|Dockerfile)$`),
	regexp.MustCompile(`(^|/)(doc|main)\.go$`),
}

// Article III — co-located tests. Test-file name shapes, used both to
// recognise test files and to derive candidate test paths.
var testFilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`_test\.\w+$`),
	regexp.MustCompile(`\.test\.\w+$`),
	regexp.MustCompile(`\.spec\.\w+$`),
	regexp.MustCompile(`(^|/)__tests__/`),
	regexp.MustCompile(`(^|/)tests?/`),
}

// Article VIII — anti-abstraction signals.
var abstractionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\babstract\s+class\b`),
	regexp.MustCompile(`\bimplements\s+\w*Factory\b`),
	regexp.MustCompile(`\bextends\s+Base\w+`),
}

// Article IX — structured documentation markers and description keywords.
var docMarkerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/\*\*`),
	regexp.MustCompile(`(^|\n)\s*///`),
	regexp.MustCompile(`"""`),
	regexp.MustCompile(`(^|\n)// Package \w+`),
}

var docKeywordPattern = regexp.MustCompile(`(?i)\b(purpose|overview|description|responsible|provides|implements)\b`)

// Function-start signatures for the Article VII brace scan. The capture
// group, when present, names the function.
var functionStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s*)?(\w+)\s*\(`),
	regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s*\*?\s*(\w+)?\s*\(`),
	regexp.MustCompile(`^\s*(?:public|private|protected|static)\s+[\w<>\[\]]+\s+(\w+)\s*\([^;]*$`),
	regexp.MustCompile(`^\s*(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>\s*\{`),
}

// Import-statement shapes counted against max_dependencies.
var importLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*import\s+[\w"./@{*]`),
	regexp.MustCompile(`^\s*from\s+\S+\s+import\b`),
	regexp.MustCompile(`^\s*#include\s*[<"]`),
	regexp.MustCompile(`^\s*(?:const|let|var)\s+.+=\s*require\s*\(`),
	regexp.MustCompile(`^\s*use\s+[\w:]+;`),
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsTestFile reports whether a path names a test artifact.
func IsTestFile(path string) bool {
	return matchesAny(testFilePatterns, path)
}

func isArticleIExempt(path string) bool {
	return matchesAny(articleIExemptPatterns, path)
}
