package stats

import (
	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

// Automation-score weighting. Business-tunable with no documented
// derivation; overridable per Policy, preserved here as the defaults.
const (
	DefaultAccuracyWeight = 0.7
	DefaultVolumeWeight   = 0.3
)

// Quality-band thresholds (percent). Same caveat as the weights.
const (
	QualityBandGoodMin   = 61.0
	QualityBandMediumMin = 31.0
)

// Quality band labels.
const (
	BandGood   = "good"
	BandMedium = "medium"
	BandLow    = "low"
)

// Rate is the safe-division rule every percentage in the system uses: a zero
// denominator yields 0, never NaN or an error.
func Rate(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

// metrics derives the rate-style percentages for a populated node. Applied
// only after the fold completes.
func (n *node) metrics() model.AccuracyMetrics {
	acceptable := n.groupCounts[taxonomy.GroupGood] + n.groupCounts[taxonomy.GroupNeedsWork]
	return model.AccuracyMetrics{
		PrimaryJudgmentAccuracy: Rate(n.primaryCorrect, n.totalVerified),
		ClassificationAccuracy:  Rate(n.classificationCorrect, n.totalVerified),
		QualityPercent:          Rate(acceptable, n.evaluable()),
	}
}

// automationScore blends verified accuracy with normalized volume. A node
// with zero verified records falls back to pure volume ranking so that
// unverified-but-voluminous categories are not buried. maxVolume is computed
// once across all category nodes and is always >= 1.
func (n *node) automationScore(m model.AccuracyMetrics, maxVolume int, pol Policy) float64 {
	volumeShare := float64(n.totalRecords) / float64(maxVolume) * 100
	if n.totalVerified == 0 {
		return volumeShare
	}
	avgAccuracy := (m.PrimaryJudgmentAccuracy + m.ClassificationAccuracy) / 2
	return avgAccuracy*pol.AccuracyWeight + volumeShare*pol.VolumeWeight
}

// qualityBand maps a quality percentage onto the dashboard's bands.
func qualityBand(qualityPercent float64) string {
	switch {
	case qualityPercent >= QualityBandGoodMin:
		return BandGood
	case qualityPercent >= QualityBandMediumMin:
		return BandMedium
	default:
		return BandLow
	}
}
