package github

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/pr-review/internal/core"
)

func strPtr(s string) *string { return &s }

func TestSummarizePatches(t *testing.T) {
	files := []core.FileChange{
		{
			Filename: "main.go",
			Patch: strPtr("@@ -1,3 +1,4 @@\n package main\n-import \"fmt\"\n+import (\n+\t\"fmt\"\n+)\n" +
				"@@ -10,2 +11,2 @@\n-\tfmt.Println(1)\n+\tfmt.Println(2)\n\\ No newline at end of file"),
		},
		{Filename: "logo.png"},
		{Filename: "README.md", Patch: strPtr("@@ -0,0 +1 @@\n+# Widgets")},
	}

	stats := SummarizePatches(files)
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 2, stats.WithPatch)
	assert.Equal(t, 3, stats.Hunks)
	assert.Equal(t, 5, stats.Additions)
	assert.Equal(t, 2, stats.Deletions)
	assert.Equal(t, len(*files[0].Patch)+len(*files[2].Patch), stats.PatchBytes)
}

func TestSummarizePatches_Empty(t *testing.T) {
	stats := SummarizePatches(nil)
	assert.Equal(t, PatchStats{}, stats)
	assert.Len(t, stats.LogAttrs(), 12)
}
