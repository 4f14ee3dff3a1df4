package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Stats: &model.StatsResult{
			Mode:        "quality",
			GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			Totals: model.GlobalStats{
				TotalRecords:            10,
				TotalVerified:           8,
				PrimaryJudgmentAccuracy: 75,
				ClassificationAccuracy:  62.5,
				QualityPercent:          50,
			},
			Categories: []model.CategoryStats{
				{
					Category:        "Billing",
					TotalRecords:    6,
					TotalVerified:   5,
					Accuracy:        model.AccuracyMetrics{QualityPercent: 60},
					AutomationScore: 58.2,
					QualityBand:     "medium",
					SubCategories: []model.SubCategoryStats{
						{SubCategory: "Refunds", TotalRecords: 4, TotalVerified: 3, QualityBand: "medium"},
					},
				},
				{Category: "Shipping", TotalRecords: 4, TotalVerified: 3, QualityBand: "low"},
			},
			TypeDistribution: []model.TypeDistributionEntry{
				{Type: "resolved", AIPredicted: 5, VerifiedAccepted: 4, VerifiedRejected: 1},
			},
		},
		Insight: &model.InsightSummary{
			Enabled:   true,
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			SummaryMD: "Billing is nearly ready for automation.",
		},
	}
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewRenderer(false)

	if err := r.RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var got model.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if got.Stats.Totals.TotalRecords != 10 {
		t.Errorf("total records = %d, want 10", got.Stats.Totals.TotalRecords)
	}
	if got.Insight == nil || got.Insight.Provider != "openai" {
		t.Errorf("insight not preserved: %+v", got.Insight)
	}
}

func TestMarkdown_Sections(t *testing.T) {
	md := NewRenderer(true).Markdown(sampleReport())

	for _, want := range []string{
		"# AI Agent Statistics Report",
		"**Mode:** quality",
		"| Total records | 10 |",
		"| Billing | 6 | 5 |",
		"### Billing",
		"| Refunds | 4 | 3 |",
		"## Classification Type Distribution",
		"| resolved | 5 | 4 | 1 |",
		"## Insight",
		"Billing is nearly ready for automation.",
		"_Generated by agentstats._",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdown_NoFooterWhenDisabled(t *testing.T) {
	md := NewRenderer(false).Markdown(sampleReport())
	if strings.Contains(md, "_Generated by agentstats._") {
		t.Error("footer rendered despite being disabled")
	}
}

func TestRenderSummary_TerminalOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(false)
	r.out = &buf

	r.RenderSummary(sampleReport())

	out := buf.String()
	for _, want := range []string{
		"Mode: quality",
		"Records: 10 total, 8 verified",
		"Billing",
		"Insight (openai/gpt-4o-mini):",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\noutput:\n%s", want, out)
		}
	}
}
