// Package insight generates an optional LLM narrative over an assembled
// statistics tree. The narrative never affects the numbers: it is produced
// strictly after aggregation and carried alongside the result.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

// Provider is one LLM backend capable of summarizing a report.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a narrative for the stats tree.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest is the input for narrative generation.
type SummarizeRequest struct {
	Stats *model.StatsResult

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model overrides the configured model when non-empty.
	Model string

	MaxTokens int
}

// SummarizeResponse is the generated narrative.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// NewProvider builds a provider from configuration. An empty provider name
// disables insight generation and returns (nil, nil).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "anthropic", "claude":
		return NewAnthropicProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic)", cfg.Provider)
	}
}

const maxPromptCategories = 8

// BuildPrompt constructs the default summarization prompt. The model is told
// to describe only the numbers it is given; it is a narrator, not a second
// scoring pass.
func BuildPrompt(stats *model.StatsResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing an AI support-response quality report for a support-operations lead.

RULES:
1. Use ONLY the numbers below. Do not infer or invent additional figures.
2. Describe measured quality and automation readiness, not root causes.
3. Call out categories with low verified coverage explicitly.

Report (mode: %s):
- Total records: %d
- Verified records: %d
- Primary judgment accuracy: %.1f%%
- Classification accuracy: %.1f%%
- Quality percent: %.1f%%

Categories (by volume):
`, stats.Mode, stats.Totals.TotalRecords, stats.Totals.TotalVerified,
		stats.Totals.PrimaryJudgmentAccuracy, stats.Totals.ClassificationAccuracy,
		stats.Totals.QualityPercent)

	for i, c := range stats.Categories {
		if i >= maxPromptCategories {
			fmt.Fprintf(&b, "... and %d more categories\n", len(stats.Categories)-maxPromptCategories)
			break
		}
		fmt.Fprintf(&b, "- %s: %d records (%d verified), automation score %.1f, quality band %s\n",
			c.Category, c.TotalRecords, c.TotalVerified, c.AutomationScore, c.QualityBand)
	}

	b.WriteString("\nProvide a 4-6 sentence summary in Markdown focusing on where automation is ready and where review coverage is thin.")
	return b.String()
}
