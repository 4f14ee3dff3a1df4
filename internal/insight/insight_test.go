package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

func sampleStats() *model.StatsResult {
	return &model.StatsResult{
		Mode: "quality",
		Totals: model.GlobalStats{
			TotalRecords:            120,
			TotalVerified:           80,
			PrimaryJudgmentAccuracy: 87.5,
			ClassificationAccuracy:  75,
			QualityPercent:          62.5,
		},
		Categories: []model.CategoryStats{
			{Category: "Billing", TotalRecords: 70, TotalVerified: 50, AutomationScore: 81.2, QualityBand: "good"},
			{Category: "Shipping", TotalRecords: 50, TotalVerified: 30, AutomationScore: 64.9, QualityBand: "medium"},
		},
	}
}

func TestBuildPrompt_ContainsOnlyGivenNumbers(t *testing.T) {
	prompt := BuildPrompt(sampleStats())

	for _, want := range []string{
		"mode: quality",
		"Total records: 120",
		"Verified records: 80",
		"Billing: 70 records (50 verified)",
		"quality band medium",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}
}

func TestBuildPrompt_TruncatesLongCategoryLists(t *testing.T) {
	stats := sampleStats()
	for i := 0; i < 20; i++ {
		stats.Categories = append(stats.Categories, model.CategoryStats{
			Category: fmt.Sprintf("Cat%02d", i), TotalRecords: 1,
		})
	}

	prompt := BuildPrompt(stats)
	if !strings.Contains(prompt, "more categories") {
		t.Error("expected long category lists to be truncated in the prompt")
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(model.LLMConfig{Provider: ""})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p != nil {
		t.Error("expected nil provider when disabled")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(model.LLMConfig{Provider: "palm"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	if _, err := NewProvider(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("expected error for missing OpenAI API key")
	}
	if _, err := NewProvider(model.LLMConfig{Provider: "anthropic"}); err == nil {
		t.Error("expected error for missing Anthropic API key")
	}
}

// fakeProvider fails a configured number of times before succeeding, to
// exercise the summarizer's retry path.
type fakeProvider struct {
	failures int
	calls    int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	return &SummarizeResponse{Summary: "All quiet.", Model: "fake-1", TokensUsed: 7}, nil
}

func TestSummarizer_RetriesTransientFailures(t *testing.T) {
	fake := &fakeProvider{failures: 2}
	s := &Summarizer{provider: fake}

	summary, err := s.Generate(context.Background(), sampleStats())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if fake.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", fake.calls)
	}
	if !summary.Enabled || summary.SummaryMD != "All quiet." {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestSummarizer_GivesUpAfterMaxRetries(t *testing.T) {
	fake := &fakeProvider{failures: 100}
	s := &Summarizer{provider: fake}

	if _, err := s.Generate(context.Background(), sampleStats()); err == nil {
		t.Error("expected error after exhausting retries")
	}
	if fake.calls != summarizeMaxRetries+1 {
		t.Errorf("expected %d attempts, got %d", summarizeMaxRetries+1, fake.calls)
	}
}
