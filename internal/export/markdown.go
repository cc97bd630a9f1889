package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"city-stats/internal/domain"
)

// RenderMarkdown renders a comprehensive report as a Markdown string.
func RenderMarkdown(c *domain.ComprehensiveReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# City Report #%d\n\n", c.Number))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", c.GeneratedAt.Format(time.RFC3339)))
	if c.ID != "" {
		sb.WriteString(fmt.Sprintf("Report ID: %s\n\n", c.ID))
	}

	// Overall score
	sb.WriteString("## Overall Score\n\n")
	if len(c.Score.CategoryScores) > 0 {
		sb.WriteString("| Category | Score |\n")
		sb.WriteString("|----------|-------|\n")
		for _, s := range c.Score.CategoryScores {
			sb.WriteString(fmt.Sprintf("| %s | %.1f |\n", domain.HumanizeKey(s.Category), s.Score))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No category data available.\n\n")
	}
	sb.WriteString(fmt.Sprintf("**Overall: %.1f (grade %s)** %s\n\n", c.Score.Overall, c.Score.Grade, c.Score.Description))

	for _, nr := range c.Reports {
		renderAggregate(&sb, nr.Report)
	}

	return sb.String()
}

// RenderAggregateMarkdown renders a single aggregate report.
func RenderAggregateMarkdown(r *domain.AggregateReport) string {
	var sb strings.Builder
	renderAggregate(&sb, r)
	return sb.String()
}

func renderAggregate(sb *strings.Builder, r *domain.AggregateReport) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", r.Title))
	if r.Description != "" {
		sb.WriteString(r.Description + "\n\n")
	}

	if len(r.Scalars) > 0 {
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		for _, s := range r.Scalars {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", domain.HumanizeKey(s.Name), humanize.FormatFloat("#,###.##", s.Value)))
		}
		sb.WriteString("\n")
	}

	if len(r.Categories) > 0 {
		sb.WriteString("| Category | Count |\n")
		sb.WriteString("|----------|-------|\n")
		for _, c := range r.Categories {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", domain.HumanizeKey(c.Label), humanize.FormatFloat("#,###.", c.Value)))
		}
		sb.WriteString("\n")
	}

	if r.HasTurnAxis() {
		sb.WriteString(fmt.Sprintf("Turns %d-%d (%d recorded)\n\n", r.Turns[0], r.Turns[len(r.Turns)-1], len(r.Turns)))
	}

	sb.WriteString("### Recommendations\n\n")
	if len(r.Recommendations) == 0 {
		sb.WriteString("No recommendations.\n\n")
		return
	}
	for _, rec := range r.Recommendations {
		sb.WriteString(fmt.Sprintf("- %s\n", rec))
	}
	sb.WriteString("\n")
}
