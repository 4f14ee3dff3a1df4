package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oldg9516/ai-agents-stats/internal/logging"
	"github.com/oldg9516/ai-agents-stats/internal/pipeline"
	"github.com/oldg9516/ai-agents-stats/internal/source"
	"github.com/oldg9516/ai-agents-stats/internal/stats"
)

var (
	reportMode     string
	reportAllModes bool
	reportFrom     string
	reportTo       string
	reportCategory string
	outJSON        string
	outMD          string
	outXLSX        string
	noCache        bool
	llmProvider    string
	llmModel       string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute statistics over reviewed records and write a report",
	Long: `Report reads reviewed classification records from the configured source,
folds them into quality and automation statistics, and writes the result.

Modes:
  quality     every record, quality labels scored into groups (default)
  actions     verified records only, for action-level review
  automation  every record, categories ranked by automation readiness

Example:
  agentstats report --json report.json --md report.md
  agentstats report --mode automation --from 2026-01-01T00:00:00Z
  agentstats report --all-modes --xlsx report.xlsx
  agentstats report --llm-provider openai --llm-model gpt-4o-mini`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportMode, "mode", "quality", "aggregation mode (quality, actions, automation)")
	reportCmd.Flags().BoolVar(&reportAllModes, "all-modes", false, "compute every mode; output paths get a -<mode> suffix")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "window start, RFC 3339 (inclusive)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "window end, RFC 3339 (exclusive)")
	reportCmd.Flags().StringVar(&reportCategory, "category", "", "restrict to one raw category value")

	reportCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	reportCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	reportCmd.Flags().StringVar(&outXLSX, "xlsx", "", "output XLSX path (optional)")
	reportCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	reportCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "generate an insight narrative (openai, anthropic)")
	reportCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		// Re-resolve the key: the provider may differ from the config file's.
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if cfg.LLM.Provider != "" && cfg.LLM.APIKey == "" {
		return fmt.Errorf("LLM provider %q configured but no API key found in environment", cfg.LLM.Provider)
	}

	q, err := buildQuery()
	if err != nil {
		return err
	}

	log := logging.New(cfg.Log)
	ctx := context.Background()

	p, err := pipeline.New(ctx, cfg, log.Entry)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	if reportAllModes {
		return runAllModes(ctx, p, q)
	}

	mode, err := stats.ParseMode(reportMode)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, mode, q)
	if err != nil {
		return err
	}
	report := p.BuildReport(ctx, result)
	return p.RenderReport(report, outJSON, outMD, outXLSX)
}

func runAllModes(ctx context.Context, p *pipeline.Pipeline, q source.Query) error {
	results := p.RunModes(ctx,
		[]stats.Mode{stats.ModeQuality, stats.ModeActions, stats.ModeAutomation}, q)

	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("mode %s: %w", r.Mode, r.Error)
		}
		report := p.BuildReport(ctx, r.Stats)
		err := p.RenderReport(report,
			suffixPath(outJSON, string(r.Mode)),
			suffixPath(outMD, string(r.Mode)),
			suffixPath(outXLSX, string(r.Mode)))
		if err != nil {
			return fmt.Errorf("mode %s: %w", r.Mode, err)
		}
	}
	return nil
}

// suffixPath inserts -<mode> before the extension: report.json -> report-quality.json.
func suffixPath(path, mode string) string {
	if path == "" {
		return ""
	}
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[:i] + "-" + mode + path[i:]
	}
	return path + "-" + mode
}

func buildQuery() (source.Query, error) {
	var q source.Query
	if reportFrom != "" {
		t, err := time.Parse(time.RFC3339, reportFrom)
		if err != nil {
			return q, fmt.Errorf("invalid --from: %w", err)
		}
		q.From = t
	}
	if reportTo != "" {
		t, err := time.Parse(time.RFC3339, reportTo)
		if err != nil {
			return q, fmt.Errorf("invalid --to: %w", err)
		}
		q.To = t
	}
	q.Category = reportCategory
	return q, nil
}
