package stats

import (
	"testing"

	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

func TestRate_SafeDivision(t *testing.T) {
	cases := []struct {
		name string
		num  int
		den  int
		want float64
	}{
		{"zero over zero", 0, 0, 0},
		{"nonzero over zero", 5, 0, 0},
		{"quarter", 3, 12, 25},
		{"full", 7, 7, 100},
	}
	for _, tc := range cases {
		if got := Rate(tc.num, tc.den); got != tc.want {
			t.Errorf("%s: Rate(%d, %d) = %v, want %v", tc.name, tc.num, tc.den, got, tc.want)
		}
	}
}

// 10 verified records, 4 excluded: the quality denominator is 6, not 10.
func TestMetrics_ExcludedGroupShrinksDenominator(t *testing.T) {
	n := newNode()
	n.totalVerified = 10
	n.groupCounts[taxonomy.GroupGood] = 3
	n.groupCounts[taxonomy.GroupCritical] = 3
	n.groupCounts[taxonomy.GroupExcluded] = 4

	if got := n.evaluable(); got != 6 {
		t.Fatalf("evaluable = %d, want 6", got)
	}
	m := n.metrics()
	if m.QualityPercent != 50 {
		t.Errorf("quality percent = %v, want 50 (3 acceptable of 6 evaluable)", m.QualityPercent)
	}
}

func TestMetrics_QualityNumeratorIncludesNeedsWork(t *testing.T) {
	n := newNode()
	n.totalVerified = 4
	n.groupCounts[taxonomy.GroupGood] = 1
	n.groupCounts[taxonomy.GroupNeedsWork] = 2
	n.groupCounts[taxonomy.GroupCritical] = 1

	if m := n.metrics(); m.QualityPercent != 75 {
		t.Errorf("quality percent = %v, want 75", m.QualityPercent)
	}
}

func TestAutomationScore_Blend(t *testing.T) {
	n := newNode()
	n.totalRecords = 50
	n.totalVerified = 10
	n.primaryCorrect = 8
	n.classificationCorrect = 6

	m := n.metrics() // primary 80, classification 60, average 70
	got := n.automationScore(m, 100, DefaultPolicy())

	want := 70*DefaultAccuracyWeight + 50*DefaultVolumeWeight
	if got != want {
		t.Errorf("automation score = %v, want %v", got, want)
	}
}

func TestAutomationScore_VolumeFallbackWhenUnverified(t *testing.T) {
	n := newNode()
	n.totalRecords = 30

	got := n.automationScore(n.metrics(), 100, DefaultPolicy())
	if got != 30 {
		t.Errorf("unverified node automation score = %v, want 30 (pure volume)", got)
	}
}

func TestQualityBand(t *testing.T) {
	cases := []struct {
		percent float64
		want    string
	}{
		{100, BandGood},
		{61, BandGood},
		{60.9, BandMedium},
		{31, BandMedium},
		{30.9, BandLow},
		{0, BandLow},
	}
	for _, tc := range cases {
		if got := qualityBand(tc.percent); got != tc.want {
			t.Errorf("qualityBand(%v) = %q, want %q", tc.percent, got, tc.want)
		}
	}
}
