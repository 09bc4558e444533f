package requirements

import (
	"regexp"
	"strings"
)

// Requirement is one tagged requirement extracted from the document.
type Requirement struct {
	ID       string
	Text     string // remainder of the tag line
	FullText string // tag line plus continuation lines
	Line     int    // 1-based
}

// A requirement tag at line start or directly after punctuation.
var tagPattern = regexp.MustCompile(`(?:^|[.。:：)\]]\s*|[-*]\s+|\|\s*)\*{0,2}((?:REQ|FR|NFR|UC)-\d+)\*{0,2}[:.)：]?\s*(.*)`)

// Extract pulls requirements out of a Markdown document in document order.
// A requirement's full text runs until a blank line, a heading, or the
// next tag.
func Extract(doc string) []Requirement {
	lines := strings.Split(doc, "\n")
	var reqs []Requirement

	for i := 0; i < len(lines); i++ {
		m := tagPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		req := Requirement{
			ID:   m[1],
			Text: strings.TrimSpace(m[2]),
			Line: i + 1,
		}
		full := []string{strings.TrimSpace(m[2])}
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || strings.HasPrefix(next, "#") || tagPattern.MatchString(lines[j]) {
				break
			}
			full = append(full, next)
		}
		req.FullText = strings.TrimSpace(strings.Join(full, " "))
		if req.Text == "" {
			req.Text = req.FullText
		}
		reqs = append(reqs, req)
	}
	return reqs
}
