// Package jobs runs the review of a single pull request: fetch the diff,
// generate a review and publish it.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/pr-review/internal/config"
	"github.com/sevigo/pr-review/internal/core"
	"github.com/sevigo/pr-review/internal/github"
	"github.com/sevigo/pr-review/internal/llm"
)

// ReviewJob fetches a pull request diff, asks the reviewer for a review and
// posts it as a comment. Each stage runs once; the first failure aborts the
// rest, so a failed generation never leaves a comment behind.
type ReviewJob struct {
	cfg      *config.Config
	ghClient github.Client
	reviewer *llm.Reviewer
	logger   *slog.Logger
}

// NewReviewJob creates a new ReviewJob.
func NewReviewJob(cfg *config.Config, ghClient github.Client, reviewer *llm.Reviewer, logger *slog.Logger) core.Job {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if ghClient == nil {
		panic("GitHub client cannot be nil")
	}
	if reviewer == nil {
		panic("reviewer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReviewJob{cfg: cfg, ghClient: ghClient, reviewer: reviewer, logger: logger}
}

// Run executes the review for pr.
func (j *ReviewJob) Run(ctx context.Context, pr core.PullRequest) (*core.ReviewResult, error) {
	if err := validateInputs(ctx, pr); err != nil {
		j.logger.Error("input validation failed", "error", err)
		return nil, err
	}

	log := j.logger.With("repo", pr.FullName(), "pr", pr.Number)
	log.Info("starting review job")

	files, err := j.ghClient.GetChangedFiles(ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request files: %w", err)
	}
	log.Info("fetched pull request files", github.SummarizePatches(files).LogAttrs()...)

	result := &core.ReviewResult{PullRequest: pr}

	diff := core.JoinPatches(files)
	if core.IsBlank(diff) {
		log.Info("no diff to review, skipping generation")
		result.Skipped = true
		return result, nil
	}

	review, err := j.reviewer.Review(ctx, diff)
	if err != nil {
		return nil, fmt.Errorf("failed to generate review: %w", err)
	}
	result.Review = review

	if j.cfg.DryRun {
		log.Info("dry run, not posting review", "chars", len(review))
		return result, nil
	}

	posted, err := j.ghClient.CreateComment(ctx, pr.Owner, pr.Repo, pr.Number, review)
	if err != nil {
		return nil, fmt.Errorf("failed to post review comment: %w", err)
	}
	result.Posted = true
	result.Comment = posted

	log.Info("review job completed successfully", "comment_id", posted.ID)
	return result, nil
}
