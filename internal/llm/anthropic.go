package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sevigo/pr-review/internal/config"
)

const anthropicMaxTokens = 4096

// Anthropic generates text with the Anthropic Messages API.
type Anthropic struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewAnthropic creates a generator using ai.AnthropicAPIKey. SDK retries are
// disabled; a run makes at most one attempt per stage.
func NewAnthropic(ai config.AIConfig, opts ...option.RequestOption) *Anthropic {
	base := []option.RequestOption{option.WithMaxRetries(0)}
	if ai.AnthropicAPIKey != "" {
		base = append(base, option.WithAPIKey(ai.AnthropicAPIKey))
	}
	client := anthropic.NewClient(append(base, opts...)...)
	return &Anthropic{
		api:   &client,
		model: anthropic.Model(ai.GeneratorModel),
	}
}

func (a *Anthropic) Name() string  { return config.ProviderAnthropic }
func (a *Anthropic) Model() string { return string(a.model) }

func (a *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := a.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
