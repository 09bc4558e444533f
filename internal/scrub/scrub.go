// Package scrub removes secrets from finding evidence before it reaches a
// report. Evidence is quoted verbatim from reviewed documents and source
// files, so anything matching a credential shape gets replaced first.
package scrub

import (
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gaveldev/gavel/internal/finding"
)

const placeholder = "[SCRUBBED]"

// secretPatterns are regex heuristics for common secret types.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys (long hex/base64 strings after common key patterns)
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// AWS secret access keys
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	// Generic secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// Generic long hex strings that look like secrets (32+ chars in an assignment)
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// Secrets replaces detected secrets in text with [SCRUBBED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// ShouldScrubPath checks if a file path matches any scrub path pattern.
// Patterns use doublestar globs, same as the loader's excludes.
func ShouldScrubPath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Findings scrubs evidence in place. Findings located in a path-policy
// match lose their evidence entirely; everything else gets secret
// patterns replaced.
func Findings(findings []finding.Finding, scrubPaths []string) {
	for i := range findings {
		f := &findings[i]
		if f.Evidence == "" {
			continue
		}
		if ShouldScrubPath(f.Location.Path, scrubPaths) {
			f.Evidence = placeholder + " (evidence withheld by path policy)"
			continue
		}
		f.Evidence = Secrets(f.Evidence)
	}
}
