package constitution

import "strings"

// FunctionSpan is one function located by the brace scan, with an
// approximate line count.
type FunctionSpan struct {
	Name      string
	StartLine int // 1-based
	Lines     int
}

// scanFunctions walks the file line by line. When a line matches a
// function-start signature it counts brace depth from that line until the
// depth returns to zero. Spans that never open a brace are ignored.
func scanFunctions(text string) []FunctionSpan {
	lines := strings.Split(text, "\n")
	var spans []FunctionSpan

	for i := 0; i < len(lines); i++ {
		name, ok := functionStart(lines[i])
		if !ok {
			continue
		}
		depth := 0
		opened := false
		end := -1
		for j := i; j < len(lines); j++ {
			for _, ch := range lines[j] {
				switch ch {
				case '{':
					depth++
					opened = true
				case '}':
					depth--
				}
			}
			if opened && depth <= 0 {
				end = j
				break
			}
			// A signature with no opening brace within two lines is
			// likely a declaration or an interface method.
			if !opened && j > i+1 {
				break
			}
		}
		if !opened || end < 0 {
			continue
		}
		spans = append(spans, FunctionSpan{
			Name:      name,
			StartLine: i + 1,
			Lines:     end - i + 1,
		})
		i = end
	}
	return spans
}

func functionStart(line string) (string, bool) {
	for _, p := range functionStartPatterns {
		m := p.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := "anonymous"
		if len(m) > 1 && m[1] != "" {
			name = m[1]
		}
		return name, true
	}
	return "", false
}

// countImports counts import statements, including the members of a Go
// grouped import block.
func countImports(text string) int {
	lines := strings.Split(text, "\n")
	count := 0
	inGoBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inGoBlock {
			if trimmed == ")" {
				inGoBlock = false
				continue
			}
			if trimmed != "" && !strings.HasPrefix(trimmed, "//") {
				count++
			}
			continue
		}
		if strings.HasPrefix(trimmed, "import (") {
			inGoBlock = true
			continue
		}
		if matchesAny(importLinePatterns, line) {
			count++
		}
	}
	return count
}
