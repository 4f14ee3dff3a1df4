package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oldg9516/ai-agents-stats/internal/export"
	"github.com/oldg9516/ai-agents-stats/internal/logging"
	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/pipeline"
	"github.com/oldg9516/ai-agents-stats/internal/stats"
)

var exportOut string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export statistics as an XLSX workbook",
	Long: `Export computes statistics for one mode and writes them as a four-sheet
XLSX workbook (totals, categories, sub-categories, type distribution).

Example:
  agentstats export --out stats.xlsx
  agentstats export --mode automation --from 2026-01-01T00:00:00Z --out q1.xlsx`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "stats.xlsx", "output XLSX path")
	exportCmd.Flags().StringVar(&reportMode, "mode", "quality", "aggregation mode (quality, actions, automation)")
	exportCmd.Flags().StringVar(&reportFrom, "from", "", "window start, RFC 3339 (inclusive)")
	exportCmd.Flags().StringVar(&reportTo, "to", "", "window end, RFC 3339 (exclusive)")
	exportCmd.Flags().StringVar(&reportCategory, "category", "", "restrict to one raw category value")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode, err := stats.ParseMode(reportMode)
	if err != nil {
		return err
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

	result, err := p.Run(ctx, mode, q)
	if err != nil {
		return err
	}
	return export.WriteXLSX(&model.Report{Stats: result}, exportOut)
}
