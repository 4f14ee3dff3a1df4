package stats

import (
	"testing"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

func strptr(s string) *string { return &s }

func TestNormalize_Defaults(t *testing.T) {
	cat, sub := Normalize(model.ClassificationRecord{})
	if cat != UnknownCategory {
		t.Errorf("expected missing category to normalize to %q, got %q", UnknownCategory, cat)
	}
	if sub != NoSubCategory {
		t.Errorf("expected missing sub-category to normalize to %q, got %q", NoSubCategory, sub)
	}
}

func TestNormalize_PresentValues(t *testing.T) {
	cat, sub := Normalize(model.ClassificationRecord{
		Category:    strptr("Billing"),
		SubCategory: strptr("Refunds"),
	})
	if cat != "Billing" || sub != "Refunds" {
		t.Errorf("expected (Billing, Refunds), got (%q, %q)", cat, sub)
	}
}

// Empty string is a real key, distinct from the Unknown sentinel. Coalescing
// it would change the visible category list, so the policy is pinned here.
func TestNormalize_EmptyStringIsDistinctFromUnknown(t *testing.T) {
	cat, sub := Normalize(model.ClassificationRecord{
		Category:    strptr(""),
		SubCategory: strptr(""),
	})
	if cat == UnknownCategory {
		t.Errorf("empty-string category must not be coalesced with %q", UnknownCategory)
	}
	if cat != "" {
		t.Errorf("expected empty-string category to stay empty, got %q", cat)
	}
	if sub != "" {
		t.Errorf("expected empty-string sub-category to stay empty, got %q", sub)
	}
}
