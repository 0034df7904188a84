// Package core defines the data structures and errors shared by the review
// pipeline: the pull request being reviewed, the files it changes and the
// outcome of a single run.
package core

import (
	"fmt"
	"strings"
)

// PullRequest identifies the pull request a run operates on.
type PullRequest struct {
	Owner  string
	Repo   string
	Number int
}

// FullName returns the "owner/name" form of the repository.
func (p PullRequest) FullName() string {
	return p.Owner + "/" + p.Repo
}

func (p PullRequest) String() string {
	return fmt.Sprintf("%s#%d", p.FullName(), p.Number)
}

// FileChange is a single file entry of a pull request.
// Patch is nil when the hosting API omits it, e.g. for binary files.
type FileChange struct {
	Filename string
	Patch    *string
}

// HasPatch reports whether the API returned patch text for the file.
func (f FileChange) HasPatch() bool {
	return f.Patch != nil
}

// JoinPatches concatenates the patch text of every file that has one,
// in input order, separated by newlines.
func JoinPatches(files []FileChange) string {
	patches := make([]string, 0, len(files))
	for _, f := range files {
		if f.HasPatch() {
			patches = append(patches, *f.Patch)
		}
	}
	return strings.Join(patches, "\n")
}

// IsBlank reports whether a diff has nothing to review.
func IsBlank(diff string) bool {
	return strings.TrimSpace(diff) == ""
}

// PostedComment is the acknowledgement returned after a comment is created.
type PostedComment struct {
	ID  int64
	URL string
}

// ReviewResult summarises one pipeline run.
type ReviewResult struct {
	PullRequest PullRequest
	// Skipped is true when the diff was blank and nothing was generated.
	Skipped bool
	Review  string
	// Posted is false for skipped and dry runs.
	Posted  bool
	Comment *PostedComment
}
