package stats

import (
	"testing"

	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

func TestAssemble_CategorySortIsDeterministic(t *testing.T) {
	records := []model.ClassificationRecord{
		record("Shipping", "Tracking"),
		record("Billing", "Refunds"),
		record("Billing", "Refunds"),
		record("Accounts", "Login"), // ties with Shipping on volume
	}

	res, err := Aggregate(records, taxonomy.Default(), DefaultPolicy())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	got := make([]string, 0, len(res.Categories))
	for _, c := range res.Categories {
		got = append(got, c.Category)
	}
	want := []string{"Billing", "Accounts", "Shipping"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category order = %v, want %v", got, want)
		}
	}
}

func TestAssemble_SubCategorySort(t *testing.T) {
	records := []model.ClassificationRecord{
		record("Billing", "Invoices"),
		record("Billing", "Refunds"),
		record("Billing", "Refunds"),
	}

	res, err := Aggregate(records, taxonomy.Default(), DefaultPolicy())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	subs := res.Categories[0].SubCategories
	if len(subs) != 2 {
		t.Fatalf("expected 2 sub-categories, got %d", len(subs))
	}
	if subs[0].SubCategory != "Refunds" || subs[1].SubCategory != "Invoices" {
		t.Errorf("sub-category order = [%s, %s], want [Refunds, Invoices]",
			subs[0].SubCategory, subs[1].SubCategory)
	}
}

func TestAssemble_SentinelFilteredFromDistribution(t *testing.T) {
	r1 := record("Billing", "Refunds")
	r1.AIPredictedTypes = []taxonomy.ClassificationType{taxonomy.TypeNone, taxonomy.TypeResolved}
	r2 := record("Billing", "Refunds")
	r2.AIPredictedTypes = []taxonomy.ClassificationType{taxonomy.TypeNone}

	res, err := Aggregate([]model.ClassificationRecord{r1, r2}, taxonomy.Default(), DefaultPolicy())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	for _, e := range res.TypeDistribution {
		if e.Type == taxonomy.TypeNone {
			t.Fatalf("sentinel type %q must never appear in the assembled distribution", taxonomy.TypeNone)
		}
	}
	if len(res.TypeDistribution) != 1 || res.TypeDistribution[0].Type != taxonomy.TypeResolved {
		t.Errorf("distribution = %+v, want a single %q entry", res.TypeDistribution, taxonomy.TypeResolved)
	}
}

func TestAssemble_DistributionSortByPredictedCount(t *testing.T) {
	var records []model.ClassificationRecord
	for i := 0; i < 3; i++ {
		r := record("Billing", "Refunds")
		r.AIPredictedTypes = []taxonomy.ClassificationType{taxonomy.TypeEscalate}
		records = append(records, r)
	}
	r := record("Billing", "Refunds")
	r.AIPredictedTypes = []taxonomy.ClassificationType{taxonomy.TypeResolved}
	records = append(records, r)

	res, err := Aggregate(records, taxonomy.Default(), DefaultPolicy())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.TypeDistribution[0].Type != taxonomy.TypeEscalate {
		t.Errorf("expected %q first by predicted count, got %q",
			taxonomy.TypeEscalate, res.TypeDistribution[0].Type)
	}
}

// The result must not alias fold internals: mutating the output of one call
// cannot leak into a subsequent identical call.
func TestAssemble_FreshOutput(t *testing.T) {
	records := fixtureRecords()
	tax := taxonomy.Default()

	first, err := Aggregate(records, tax, DefaultPolicy())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	first.Totals.ScoreGroupCounts[taxonomy.GroupGood] = 9999
	first.Categories[0].ScoreGroups[taxonomy.GroupCritical] = 9999

	second, err := Aggregate(records, tax, DefaultPolicy())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if second.Totals.ScoreGroupCounts[taxonomy.GroupGood] == 9999 {
		t.Error("mutating a previous result leaked into a new aggregation")
	}
	if second.Categories[0].ScoreGroups[taxonomy.GroupCritical] == 9999 {
		t.Error("mutating a previous category row leaked into a new aggregation")
	}
}

func TestAssemble_AutomationMaxVolumeFloor(t *testing.T) {
	// A single empty-looking category exercises the max(1, ...) floor.
	r := model.ClassificationRecord{}
	res, err := Aggregate([]model.ClassificationRecord{r}, taxonomy.Default(), PolicyFor(ModeAutomation))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(res.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(res.Categories))
	}
	if res.Categories[0].Category != UnknownCategory {
		t.Errorf("expected %q category, got %q", UnknownCategory, res.Categories[0].Category)
	}
	if res.Categories[0].AutomationScore != 100 {
		t.Errorf("automation score = %v, want 100 (sole category, volume fallback)", res.Categories[0].AutomationScore)
	}
}
