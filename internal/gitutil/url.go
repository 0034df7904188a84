// Package gitutil parses the repository and pull request identifiers that a
// run is configured with.
package gitutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	prURLRegex    = regexp.MustCompile(`^(?:https?://)?([^/\s]+)/([^/\s]+)/([^/\s]+)/pull/([^/\s]+)$`)
	repoNameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// PullRequestURL is a parsed pull request web URL.
type PullRequestURL struct {
	Host   string
	Owner  string
	Repo   string
	Number int
}

// ParsePullRequestURL parses a pull request URL of the form
// https://{host}/{owner}/{repo}/pull/{number}. The host is returned so the
// caller can check it against the configured GitHub or Enterprise Server host.
func ParsePullRequestURL(url string) (*PullRequestURL, error) {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")

	matches := prURLRegex.FindStringSubmatch(url)
	if len(matches) != 5 {
		return nil, fmt.Errorf("invalid pull request URL format: %s", url)
	}

	prNumberStr := matches[4]
	prNumber, err := strconv.Atoi(prNumberStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PR number '%s': %w", prNumberStr, err)
	}
	if prNumber <= 0 {
		return nil, fmt.Errorf("invalid PR number '%s': must be positive", prNumberStr)
	}

	return &PullRequestURL{
		Host:   strings.ToLower(matches[1]),
		Owner:  matches[2],
		Repo:   matches[3],
		Number: prNumber,
	}, nil
}

// ParseRepository splits an "owner/name" repository identifier, the format
// GitHub Actions exposes as GITHUB_REPOSITORY.
func ParseRepository(fullName string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(fullName), "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("repository must be in owner/name form, got %q", fullName)
	}
	owner, repo = parts[0], parts[1]
	if !repoNameRegex.MatchString(owner) || !repoNameRegex.MatchString(repo) {
		return "", "", fmt.Errorf("repository must be in owner/name form, got %q", fullName)
	}
	return owner, repo, nil
}

// ParsePullRequestNumber parses a positive pull request number.
func ParsePullRequestNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("pull request number must be a positive integer, got %q", s)
	}
	return n, nil
}
