package stats

import (
	"sort"
	"time"

	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

// assemble turns the fold's accumulators into the sorted, filtered output
// tree. Every map and slice in the result is freshly allocated; nothing
// aliases the accumulators, so the result outlives them safely.
func assemble(acc *accumulators, pol Policy) *model.StatsResult {
	maxVolume := maxCategoryVolume(acc)

	categories := make([]model.CategoryStats, 0, len(acc.categories))
	for key, cat := range acc.categories {
		m := cat.metrics()
		categories = append(categories, model.CategoryStats{
			Category:        key,
			TotalRecords:    cat.totalRecords,
			TotalVerified:   cat.totalVerified,
			Accuracy:        m,
			AutomationScore: cat.automationScore(m, maxVolume, pol),
			QualityBand:     qualityBand(m.QualityPercent),
			ScoreGroups:     copyGroupCounts(cat.groupCounts),
			SubCategories:   assembleSubs(cat.subs, maxVolume, pol),
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].TotalRecords != categories[j].TotalRecords {
			return categories[i].TotalRecords > categories[j].TotalRecords
		}
		return categories[i].Category < categories[j].Category
	})

	globalMetrics := acc.global.metrics()

	return &model.StatsResult{
		Mode:        string(pol.Mode),
		GeneratedAt: time.Now().UTC(),
		Totals: model.GlobalStats{
			TotalRecords:            acc.global.totalRecords,
			TotalVerified:           acc.global.totalVerified,
			PrimaryJudgmentAccuracy: globalMetrics.PrimaryJudgmentAccuracy,
			ClassificationAccuracy:  globalMetrics.ClassificationAccuracy,
			QualityPercent:          globalMetrics.QualityPercent,
			ScoreGroupCounts:        copyGroupCounts(acc.global.groupCounts),
		},
		Categories:       categories,
		TypeDistribution: assembleDistribution(acc.distribution, pol),
	}
}

func assembleSubs(subs map[string]*node, maxVolume int, pol Policy) []model.SubCategoryStats {
	out := make([]model.SubCategoryStats, 0, len(subs))
	for key, sub := range subs {
		m := sub.metrics()
		out = append(out, model.SubCategoryStats{
			SubCategory:     key,
			TotalRecords:    sub.totalRecords,
			TotalVerified:   sub.totalVerified,
			Accuracy:        m,
			AutomationScore: sub.automationScore(m, maxVolume, pol),
			QualityBand:     qualityBand(m.QualityPercent),
			ScoreGroups:     copyGroupCounts(sub.groupCounts),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRecords != out[j].TotalRecords {
			return out[i].TotalRecords > out[j].TotalRecords
		}
		return out[i].SubCategory < out[j].SubCategory
	})
	return out
}

func assembleDistribution(dist map[taxonomy.ClassificationType]*distEntry, pol Policy) []model.TypeDistributionEntry {
	out := make([]model.TypeDistributionEntry, 0, len(dist))
	for ct, e := range dist {
		if pol.DistributionExcludes[ct] {
			continue
		}
		out = append(out, model.TypeDistributionEntry{
			Type:             ct,
			AIPredicted:      e.aiPredicted,
			VerifiedAccepted: e.verifiedAccepted,
			VerifiedRejected: e.verifiedRejected,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AIPredicted != out[j].AIPredicted {
			return out[i].AIPredicted > out[j].AIPredicted
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// maxCategoryVolume is the automation-score volume denominator: the largest
// category volume, floored at 1 so empty inputs never divide by zero.
func maxCategoryVolume(acc *accumulators) int {
	max := 1
	for _, cat := range acc.categories {
		if cat.totalRecords > max {
			max = cat.totalRecords
		}
	}
	return max
}

func copyGroupCounts(counts map[taxonomy.ScoreGroup]int) map[taxonomy.ScoreGroup]int {
	out := make(map[taxonomy.ScoreGroup]int, len(counts))
	for _, g := range taxonomy.AllGroups() {
		out[g] = counts[g]
	}
	return out
}
