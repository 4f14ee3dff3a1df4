// Package render writes an assembled report as JSON, Markdown, or a short
// terminal summary. Rendering is presentation only: it never recomputes or
// reorders the statistics it is given.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

// Renderer writes reports in the supported output formats.
type Renderer struct {
	includeFooter bool

	// out receives the terminal summary. Defaults to stdout.
	out io.Writer
}

// NewRenderer creates a renderer. When includeFooter is true, Markdown
// reports carry a generation footer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, out: os.Stdout}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the report as a human-readable Markdown document.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	md := r.Markdown(report)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown builds the Markdown document for a report.
func (r *Renderer) Markdown(report *model.Report) string {
	stats := report.Stats
	var b strings.Builder

	fmt.Fprintf(&b, "# AI Agent Statistics Report\n\n")
	fmt.Fprintf(&b, "- **Mode:** %s\n", stats.Mode)
	fmt.Fprintf(&b, "- **Generated:** %s\n\n", stats.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "## Totals\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total records | %d |\n", stats.Totals.TotalRecords)
	fmt.Fprintf(&b, "| Verified records | %d |\n", stats.Totals.TotalVerified)
	fmt.Fprintf(&b, "| Primary judgment accuracy | %.1f%% |\n", stats.Totals.PrimaryJudgmentAccuracy)
	fmt.Fprintf(&b, "| Classification accuracy | %.1f%% |\n", stats.Totals.ClassificationAccuracy)
	fmt.Fprintf(&b, "| Quality percent | %.1f%% |\n\n", stats.Totals.QualityPercent)

	if len(stats.Categories) > 0 {
		fmt.Fprintf(&b, "## Categories\n\n")
		fmt.Fprintf(&b, "| Category | Records | Verified | Primary acc. | Class. acc. | Quality | Automation | Band |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|---|---|\n")
		for _, c := range stats.Categories {
			fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% | %.1f%% | %.1f%% | %.1f | %s |\n",
				c.Category, c.TotalRecords, c.TotalVerified,
				c.Accuracy.PrimaryJudgmentAccuracy, c.Accuracy.ClassificationAccuracy,
				c.Accuracy.QualityPercent, c.AutomationScore, c.QualityBand)
		}
		b.WriteString("\n")

		for _, c := range stats.Categories {
			if len(c.SubCategories) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", c.Category)
			fmt.Fprintf(&b, "| Sub-category | Records | Verified | Quality | Automation | Band |\n")
			fmt.Fprintf(&b, "|---|---|---|---|---|---|\n")
			for _, s := range c.SubCategories {
				fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% | %.1f | %s |\n",
					s.SubCategory, s.TotalRecords, s.TotalVerified,
					s.Accuracy.QualityPercent, s.AutomationScore, s.QualityBand)
			}
			b.WriteString("\n")
		}
	}

	if len(stats.TypeDistribution) > 0 {
		fmt.Fprintf(&b, "## Classification Type Distribution\n\n")
		fmt.Fprintf(&b, "| Type | AI predicted | Verified accepted | Verified rejected |\n")
		fmt.Fprintf(&b, "|---|---|---|---|\n")
		for _, d := range stats.TypeDistribution {
			fmt.Fprintf(&b, "| %s | %d | %d | %d |\n",
				d.Type, d.AIPredicted, d.VerifiedAccepted, d.VerifiedRejected)
		}
		b.WriteString("\n")
	}

	if report.Insight != nil && report.Insight.Enabled {
		fmt.Fprintf(&b, "## Insight\n\n")
		fmt.Fprintf(&b, "_Generated by %s/%s. Narrative only; does not affect the numbers above._\n\n",
			report.Insight.Provider, report.Insight.Model)
		b.WriteString(report.Insight.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Generated by agentstats._\n")
	}

	return b.String()
}

// RenderSummary prints a short summary to the terminal.
func (r *Renderer) RenderSummary(report *model.Report) {
	stats := report.Stats
	out := r.out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "\nMode: %s\n", stats.Mode)
	fmt.Fprintf(out, "Records: %d total, %d verified\n",
		stats.Totals.TotalRecords, stats.Totals.TotalVerified)
	fmt.Fprintf(out, "Primary judgment accuracy: %.1f%%\n", stats.Totals.PrimaryJudgmentAccuracy)
	fmt.Fprintf(out, "Classification accuracy:   %.1f%%\n", stats.Totals.ClassificationAccuracy)
	fmt.Fprintf(out, "Quality percent:           %.1f%%\n", stats.Totals.QualityPercent)

	if len(stats.Categories) > 0 {
		fmt.Fprintf(out, "\nTop categories:\n")
		for i, c := range stats.Categories {
			if i >= 5 {
				fmt.Fprintf(out, "  ... and %d more\n", len(stats.Categories)-5)
				break
			}
			fmt.Fprintf(out, "  %-24s %6d records  automation %.1f (%s)\n",
				c.Category, c.TotalRecords, c.AutomationScore, c.QualityBand)
		}
	}

	if report.Insight != nil && report.Insight.Enabled {
		fmt.Fprintf(out, "\nInsight (%s/%s):\n%s\n",
			report.Insight.Provider, report.Insight.Model, report.Insight.SummaryMD)
	}
	fmt.Fprintln(out)
}
