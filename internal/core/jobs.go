package core

import (
	"context"
)

// Job is a single unit of work executed once per process run.
type Job interface {
	// Run reviews the given pull request. A nil error means the run
	// completed, which includes the case where there was nothing to review.
	Run(ctx context.Context, pr PullRequest) (*ReviewResult, error)
}
