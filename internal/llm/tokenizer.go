package llm

import (
	"context"

	"github.com/sevigo/goframe/llms"
)

// charsPerToken is the rough ratio used when a model cannot count tokens.
const charsPerToken = 3

// TokenCounter is implemented by generators whose model can count tokens.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) int
}

// CountTokens returns the number of tokens the model reports for text.
// It falls back to an estimate when the model has no tokenizer.
func (g *modelGenerator) CountTokens(ctx context.Context, text string) int {
	if t, ok := g.llm.(llms.Tokenizer); ok {
		n, err := t.CountTokens(ctx, text)
		if err == nil {
			return n
		}
	}
	return EstimateTokens(text)
}

// EstimateTokens provides a fast, character-based estimation of token count.
func EstimateTokens(text string) int {
	return len(text) / charsPerToken
}

func countPromptTokens(ctx context.Context, gen Generator, prompt string) int {
	if tc, ok := gen.(TokenCounter); ok {
		return tc.CountTokens(ctx, prompt)
	}
	return EstimateTokens(prompt)
}
