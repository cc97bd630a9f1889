package decision

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders advisory checks as a Markdown string.
func RenderMarkdown(advisories []Advisory) string {
	var sb strings.Builder

	sb.WriteString("# Advisory Report\n\n")

	sb.WriteString("## Rule Checks\n\n")
	sb.WriteString("| # | Domain | Rule | Threshold | Actual | Status |\n")
	sb.WriteString("|---|--------|------|-----------|--------|--------|\n")
	for i, adv := range advisories {
		status := "OK"
		if adv.Fired {
			status = "FIRED"
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
			i+1, adv.Domain, adv.Name, adv.Threshold, adv.Actual, status))
	}
	sb.WriteString("\n")

	fired := Fired(advisories)
	sb.WriteString(fmt.Sprintf("Rules fired: %d/%d\n\n", len(fired), len(advisories)))

	sb.WriteString("## Recommendations\n\n")
	if len(fired) == 0 {
		sb.WriteString("No recommendations. All indicators are within thresholds.\n")
		return sb.String()
	}
	for _, adv := range fired {
		sb.WriteString(fmt.Sprintf("- %s (actual: %s)\n", adv.Message, adv.Actual))
	}

	return sb.String()
}
