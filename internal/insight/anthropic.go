package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

const defaultAnthropicModel = "claude-3-5-haiku-20241022"

// AnthropicProvider generates narratives through the Anthropic Messages API.
type AnthropicProvider struct {
	client anthropic.Client
	cfg    model.LLMConfig
}

// NewAnthropicProvider creates an Anthropic-backed provider.
func NewAnthropicProvider(cfg model.LLMConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// Summarize generates a narrative using the Messages API.
func (p *AnthropicProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Stats)
	}

	msgModel := req.Model
	if msgModel == "" {
		msgModel = p.cfg.Model
	}
	if msgModel == "" {
		msgModel = defaultAnthropicModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.cfg.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1000
	}

	timeout := time.Duration(p.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(msgModel),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: "You summarize support-automation quality reports. You never invent numbers."},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return &SummarizeResponse{
				Summary:    strings.TrimSpace(block.Text),
				Model:      msgModel,
				TokensUsed: int(message.Usage.InputTokens + message.Usage.OutputTokens),
			}, nil
		}
	}
	return nil, fmt.Errorf("no text content in Anthropic response")
}
