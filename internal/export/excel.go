// Package export writes an assembled report as an XLSX workbook for teams
// that review the breakdowns in a spreadsheet.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

const (
	sheetTotals        = "Totals"
	sheetCategories    = "Categories"
	sheetSubCategories = "Sub-Categories"
	sheetDistribution  = "Type Distribution"
)

// WriteXLSX writes the report's statistics as a four-sheet workbook.
func WriteXLSX(report *model.Report, path string) error {
	stats := report.Stats
	if stats == nil {
		return fmt.Errorf("report has no statistics")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTotals); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetCategories, sheetSubCategories, sheetDistribution} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeTotals(f, stats); err != nil {
		return err
	}
	if err := writeCategories(f, stats); err != nil {
		return err
	}
	if err := writeSubCategories(f, stats); err != nil {
		return err
	}
	if err := writeDistribution(f, stats); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeTotals(f *excelize.File, stats *model.StatsResult) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Mode", stats.Mode},
		{"Generated at", stats.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"Total records", stats.Totals.TotalRecords},
		{"Verified records", stats.Totals.TotalVerified},
		{"Primary judgment accuracy %", stats.Totals.PrimaryJudgmentAccuracy},
		{"Classification accuracy %", stats.Totals.ClassificationAccuracy},
		{"Quality percent", stats.Totals.QualityPercent},
	}
	return writeRows(f, sheetTotals, rows)
}

func writeCategories(f *excelize.File, stats *model.StatsResult) error {
	rows := [][]interface{}{{
		"Category", "Records", "Verified",
		"Primary accuracy %", "Classification accuracy %", "Quality %",
		"Automation score", "Quality band",
	}}
	for _, c := range stats.Categories {
		rows = append(rows, []interface{}{
			c.Category, c.TotalRecords, c.TotalVerified,
			c.Accuracy.PrimaryJudgmentAccuracy, c.Accuracy.ClassificationAccuracy,
			c.Accuracy.QualityPercent, c.AutomationScore, c.QualityBand,
		})
	}
	return writeRows(f, sheetCategories, rows)
}

func writeSubCategories(f *excelize.File, stats *model.StatsResult) error {
	rows := [][]interface{}{{
		"Category", "Sub-category", "Records", "Verified",
		"Quality %", "Automation score", "Quality band",
	}}
	for _, c := range stats.Categories {
		for _, s := range c.SubCategories {
			rows = append(rows, []interface{}{
				c.Category, s.SubCategory, s.TotalRecords, s.TotalVerified,
				s.Accuracy.QualityPercent, s.AutomationScore, s.QualityBand,
			})
		}
	}
	return writeRows(f, sheetSubCategories, rows)
}

func writeDistribution(f *excelize.File, stats *model.StatsResult) error {
	rows := [][]interface{}{{
		"Type", "AI predicted", "Verified accepted", "Verified rejected",
	}}
	for _, d := range stats.TypeDistribution {
		rows = append(rows, []interface{}{
			string(d.Type), d.AIPredicted, d.VerifiedAccepted, d.VerifiedRejected,
		})
	}
	return writeRows(f, sheetDistribution, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
