// Package github reads pull request files from and posts comments to the
// GitHub REST API.
package github

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-review/internal/core"
)

const filesPerPage = 100

// Client covers the two hosting API operations a review run needs.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]core.FileChange, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (*core.PostedComment, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for the review pipeline.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// GetChangedFiles lists the files of a pull request in the order the API
// returns them, following pagination until the last page.
func (g *gitHubClient) GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]core.FileChange, error) {
	var allFiles []core.FileChange
	opts := &github.ListOptions{PerPage: filesPerPage}

	for {
		files, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list files for pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, newRequestError("list pull request files", resp, err)
		}

		for _, file := range files {
			allFiles = append(allFiles, core.FileChange{
				Filename: file.GetFilename(),
				Patch:    file.Patch,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	g.logger.Debug("listed pull request files", "owner", owner, "repo", repo, "pr", number, "files", len(allFiles))
	return allFiles, nil
}

// CreateComment creates a new comment on a pull request. Pull requests share
// the issue comment endpoint.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) (*core.PostedComment, error) {
	comment := &github.IssueComment{Body: &body}
	created, resp, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, newRequestError("create pull request comment", resp, err)
	}
	return &core.PostedComment{ID: created.GetID(), URL: created.GetHTMLURL()}, nil
}

// newRequestError attaches the HTTP status, when there was one, to err.
func newRequestError(op string, resp *github.Response, err error) error {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		status = ghErr.Response.StatusCode
	}
	return &core.RequestError{Op: op, StatusCode: status, Err: err}
}
