package model

import (
	"time"

	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

// StatsResult is the assembled statistics tree handed to the presentation
// layer. It is freshly constructed on every aggregation — no aliasing of the
// fold's internal accumulators — so it is safe to cache or serialize
// independently of the computation that produced it.
type StatsResult struct {
	Mode        string    `json:"mode"`
	GeneratedAt time.Time `json:"generated_at"`

	Totals           GlobalStats             `json:"totals"`
	Categories       []CategoryStats         `json:"categories"`
	TypeDistribution []TypeDistributionEntry `json:"type_distribution"`
}

// GlobalStats are the whole-input totals and rates.
type GlobalStats struct {
	TotalRecords  int `json:"total_records"`
	TotalVerified int `json:"total_verified"`

	PrimaryJudgmentAccuracy float64 `json:"primary_judgment_accuracy"`
	ClassificationAccuracy  float64 `json:"classification_accuracy"`
	QualityPercent          float64 `json:"quality_percent"`

	ScoreGroupCounts map[taxonomy.ScoreGroup]int `json:"score_group_counts"`
}

// AccuracyMetrics are the derived rates for one node of the breakdown tree.
// All values are percentages in [0, 100]; a zero denominator yields 0.
type AccuracyMetrics struct {
	PrimaryJudgmentAccuracy float64 `json:"primary_judgment_accuracy"`
	ClassificationAccuracy  float64 `json:"classification_accuracy"`
	QualityPercent          float64 `json:"quality_percent"`
}

// CategoryStats is one row of the category breakdown, sorted descending by
// TotalRecords with ties broken by category key ascending.
type CategoryStats struct {
	Category      string `json:"category"`
	TotalRecords  int    `json:"total_records"`
	TotalVerified int    `json:"total_verified"`

	Accuracy        AccuracyMetrics             `json:"accuracy"`
	AutomationScore float64                     `json:"automation_score"`
	QualityBand     string                      `json:"quality_band"`
	ScoreGroups     map[taxonomy.ScoreGroup]int `json:"score_groups"`

	SubCategories []SubCategoryStats `json:"sub_categories"`
}

// SubCategoryStats is one row of the sub-category breakdown within a
// category, same shape and sort rule as CategoryStats.
type SubCategoryStats struct {
	SubCategory   string `json:"sub_category"`
	TotalRecords  int    `json:"total_records"`
	TotalVerified int    `json:"total_verified"`

	Accuracy        AccuracyMetrics             `json:"accuracy"`
	AutomationScore float64                     `json:"automation_score"`
	QualityBand     string                      `json:"quality_band"`
	ScoreGroups     map[taxonomy.ScoreGroup]int `json:"score_groups"`
}

// TypeDistributionEntry tracks, per classification type, how many records the
// AI assigned it to and how verification went for those assignments. Types
// that appear only in human corrections (the AI missed them entirely) show up
// with VerifiedAccepted > 0 and AIPredicted == 0.
type TypeDistributionEntry struct {
	Type             taxonomy.ClassificationType `json:"type"`
	AIPredicted      int                         `json:"ai_predicted_count"`
	VerifiedAccepted int                         `json:"verified_accepted_count"`
	VerifiedRejected int                         `json:"verified_rejected_count"`
}

// InsightSummary is an optional LLM-generated narrative over a StatsResult.
// It never affects the numbers and is clearly separated from them.
type InsightSummary struct {
	Enabled    bool   `json:"enabled"`
	Provider   string `json:"provider,omitempty"`
	Model      string `json:"model,omitempty"`
	SummaryMD  string `json:"summary_md,omitempty"`
	TokensUsed int    `json:"tokens_used,omitempty"`
}

// Report bundles a StatsResult with its optional narrative for rendering.
type Report struct {
	Stats   *StatsResult    `json:"stats"`
	Insight *InsightSummary `json:"insight,omitempty"`
}
