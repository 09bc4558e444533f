package requirements

import "regexp"

// The five EARS templates. Order matters: the more specific event/state/
// unwanted/optional forms are tried before the ubiquitous fallback.
var earsTemplates = []struct {
	Name    string
	Pattern *regexp.Regexp
}{
	{"event-driven", regexp.MustCompile(`(?i)^when\s+.+[,、]\s*the\s+.+\s+shall\s+.+`)},
	{"state-driven", regexp.MustCompile(`(?i)^while\s+.+[,、]\s*(the\s+)?.+\s+shall\s+.+`)},
	{"unwanted", regexp.MustCompile(`(?i)^if\s+.+[,、]\s*then\s+(the\s+)?.+\s+shall\s+.+`)},
	{"optional", regexp.MustCompile(`(?i)^where\s+.+[,、]\s*(the\s+)?.+\s+shall\s+.+`)},
	{"ubiquitous", regexp.MustCompile(`(?i)^the\s+.+\s+shall\s+.+`)},
}

// ClassifyEARS returns the EARS template the text matches, if any.
func ClassifyEARS(text string) (string, bool) {
	for _, tpl := range earsTemplates {
		if tpl.Pattern.MatchString(text) {
			return tpl.Name, true
		}
	}
	return "", false
}
