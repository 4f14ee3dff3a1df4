// Package notify posts a headline summary of a finished report to Slack.
package notify

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

const maxMessageCategories = 5

// poster is the slice of the Slack client the notifier needs.
type poster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// Notifier delivers report summaries to a Slack channel.
type Notifier struct {
	api     poster
	channel string
}

// New builds a notifier from configuration. Returns nil when Slack delivery
// is disabled — callers treat a nil notifier as a no-op.
func New(cfg model.SlackConfig) (*Notifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("Slack token is required when Slack delivery is enabled")
	}
	if cfg.Channel == "" {
		return nil, fmt.Errorf("Slack channel is required when Slack delivery is enabled")
	}
	return &Notifier{api: slack.New(cfg.Token), channel: cfg.Channel}, nil
}

// Send posts the report summary to the configured channel.
func (n *Notifier) Send(report *model.Report) error {
	_, _, err := n.api.PostMessage(n.channel,
		slack.MsgOptionText(Message(report), false),
	)
	if err != nil {
		return fmt.Errorf("post to %s: %w", n.channel, err)
	}
	return nil
}

// Message formats the headline summary posted to Slack.
func Message(report *model.Report) string {
	stats := report.Stats
	var b strings.Builder

	fmt.Fprintf(&b, "*AI agent statistics* (mode: %s)\n", stats.Mode)
	fmt.Fprintf(&b, "Records: %d total, %d verified\n",
		stats.Totals.TotalRecords, stats.Totals.TotalVerified)
	fmt.Fprintf(&b, "Primary judgment accuracy: %.1f%% • Classification accuracy: %.1f%% • Quality: %.1f%%\n",
		stats.Totals.PrimaryJudgmentAccuracy, stats.Totals.ClassificationAccuracy,
		stats.Totals.QualityPercent)

	if len(stats.Categories) > 0 {
		b.WriteString("\nTop categories:\n")
		for i, c := range stats.Categories {
			if i >= maxMessageCategories {
				fmt.Fprintf(&b, "… and %d more\n", len(stats.Categories)-maxMessageCategories)
				break
			}
			fmt.Fprintf(&b, "• *%s*: %d records, automation %.1f (%s)\n",
				c.Category, c.TotalRecords, c.AutomationScore, c.QualityBand)
		}
	}

	if report.Insight != nil && report.Insight.Enabled {
		fmt.Fprintf(&b, "\n_%s_\n", report.Insight.SummaryMD)
	}

	return b.String()
}
