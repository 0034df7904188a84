package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sevigo/pr-review/internal/core"
)

// Reviewer wraps a diff in the code review prompt and asks the generator
// for a review. The returned text is passed through unmodified.
type Reviewer struct {
	promptMgr *PromptManager
	generator Generator
	logger    *slog.Logger
}

// NewReviewer creates a Reviewer.
func NewReviewer(promptMgr *PromptManager, generator Generator, logger *slog.Logger) *Reviewer {
	return &Reviewer{promptMgr: promptMgr, generator: generator, logger: logger}
}

// BuildPrompt renders the review prompt for diff.
func (r *Reviewer) BuildPrompt(diff string) (string, error) {
	return r.promptMgr.Render(CodeReviewPrompt, ModelProvider(r.generator.Name()), ReviewPromptData{Diff: diff})
}

// Review makes exactly one generator call. Any failure, including a blank
// response, is returned as *core.GenerationError.
func (r *Reviewer) Review(ctx context.Context, diff string) (string, error) {
	genErr := func(err error) error {
		return &core.GenerationError{Provider: r.generator.Name(), Model: r.generator.Model(), Err: err}
	}

	prompt, err := r.BuildPrompt(diff)
	if err != nil {
		return "", genErr(fmt.Errorf("could not render prompt: %w", err))
	}

	r.logger.Info("calling LLM for review",
		"provider", r.generator.Name(),
		"model", r.generator.Model(),
		"prompt_chars", len(prompt),
		"prompt_tokens", countPromptTokens(ctx, r.generator, prompt),
	)
	start := time.Now()

	review, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return "", genErr(err)
	}
	if core.IsBlank(review) {
		return "", genErr(core.ErrEmptyReview)
	}

	r.logger.Info("LLM review generated", "chars", len(review), "duration", time.Since(start).Round(time.Millisecond))
	return review, nil
}
