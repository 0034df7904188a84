package github

import (
	"regexp"
	"strings"

	"github.com/sevigo/pr-review/internal/core"
)

var hunkHeaderRegex = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+\d+(?:,\d+)? @@`)

// PatchStats summarises the changed files of a pull request.
type PatchStats struct {
	Files      int
	WithPatch  int
	Hunks      int
	Additions  int
	Deletions  int
	PatchBytes int
}

// LogAttrs returns the stats as slog key/value pairs.
func (s PatchStats) LogAttrs() []any {
	return []any{
		"files", s.Files,
		"files_with_patch", s.WithPatch,
		"hunks", s.Hunks,
		"additions", s.Additions,
		"deletions", s.Deletions,
		"patch_bytes", s.PatchBytes,
	}
}

// SummarizePatches counts hunks and added/removed lines across files.
// Lines outside a hunk, such as "\ No newline at end of file", are ignored.
func SummarizePatches(files []core.FileChange) PatchStats {
	stats := PatchStats{Files: len(files)}
	for _, f := range files {
		if !f.HasPatch() {
			continue
		}
		stats.WithPatch++
		stats.PatchBytes += len(*f.Patch)

		inHunk := false
		for _, line := range strings.Split(*f.Patch, "\n") {
			if strings.HasPrefix(line, "@@") {
				inHunk = hunkHeaderRegex.MatchString(line)
				if inHunk {
					stats.Hunks++
				}
				continue
			}
			if !inHunk {
				continue
			}
			switch {
			case strings.HasPrefix(line, "+"):
				stats.Additions++
			case strings.HasPrefix(line, "-"):
				stats.Deletions++
			}
		}
	}
	return stats
}
