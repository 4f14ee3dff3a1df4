package insight

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

const summarizeMaxRetries = 3

// Summarizer wraps a provider with retry handling and converts its output
// into the report's insight block.
type Summarizer struct {
	provider Provider
	cfg      model.LLMConfig
}

// NewSummarizer builds a summarizer from configuration. Returns nil when no
// provider is configured — callers treat a nil summarizer as disabled.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Summarizer{provider: provider, cfg: cfg}, nil
}

// Generate produces the insight block for a computed result. Transient API
// failures are retried with exponential backoff; persistent failure is
// returned to the caller, who may attach the report without an insight.
func (s *Summarizer) Generate(ctx context.Context, stats *model.StatsResult) (*model.InsightSummary, error) {
	if stats == nil {
		return nil, fmt.Errorf("nil stats result")
	}

	var resp *SummarizeResponse
	operation := func() error {
		var err error
		resp, err = s.provider.Summarize(ctx, SummarizeRequest{
			Stats:     stats,
			MaxTokens: s.cfg.MaxTokens,
		})
		return err
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), summarizeMaxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, bo); err != nil {
		return nil, fmt.Errorf("generate insight with %s: %w", s.provider.Name(), err)
	}

	return &model.InsightSummary{
		Enabled:    true,
		Provider:   s.provider.Name(),
		Model:      resp.Model,
		SummaryMD:  resp.Summary,
		TokensUsed: resp.TokensUsed,
	}, nil
}
