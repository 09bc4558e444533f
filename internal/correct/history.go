package correct

import (
	"fmt"
	"strings"
	"time"
)

const historyHeading = "## Change History"

type historyRow struct {
	findingID string
	category  string
	action    Action
}

// appendHistory adds the applied actions to the document's Change History
// table, creating the section on first use.
func appendHistory(text string, rows []historyRow, now time.Time) string {
	var b strings.Builder
	date := now.Format("2006-01-02")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", date, row.findingID, row.category, row.action)
	}

	if strings.Contains(text, historyHeading) {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return text + b.String()
	}

	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + "\n" + historyHeading + "\n\n" +
		"| Date | Finding | Category | Action |\n" +
		"|------|---------|----------|--------|\n" +
		b.String()
}
