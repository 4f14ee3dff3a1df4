package stats

import "github.com/oldg9516/ai-agents-stats/internal/model"

// Sentinel grouping keys for records the source never categorized.
const (
	UnknownCategory = "Unknown"
	NoSubCategory   = "N/A"
)

// Normalize extracts the grouping keys from a raw record. It is total over
// any input shape: absent fields default to the sentinel keys and nothing is
// ever rejected. An empty-string category is a distinct key from "Unknown" —
// coalescing it would change the visible category list, so the policy is
// preserved as-is.
func Normalize(r model.ClassificationRecord) (categoryKey, subCategoryKey string) {
	categoryKey = UnknownCategory
	if r.Category != nil {
		categoryKey = *r.Category
	}
	subCategoryKey = NoSubCategory
	if r.SubCategory != nil {
		subCategoryKey = *r.SubCategory
	}
	return categoryKey, subCategoryKey
}
