package jobs

import (
	"context"
	"fmt"

	"github.com/sevigo/pr-review/internal/core"
)

// validateInputs ensures the pull request reference is usable before any
// network call is made.
func validateInputs(ctx context.Context, pr core.PullRequest) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	problems := &core.ConfigError{}
	if pr.Owner == "" {
		problems.Invalid = append(problems.Invalid, "repository owner cannot be empty")
	}
	if pr.Repo == "" {
		problems.Invalid = append(problems.Invalid, "repository name cannot be empty")
	}
	if pr.Number <= 0 {
		problems.Invalid = append(problems.Invalid, fmt.Sprintf("pull request number must be positive, got: %d", pr.Number))
	}
	if problems.HasProblems() {
		return problems
	}
	return nil
}
