package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	gogithub "github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-review/internal/config"
	"github.com/sevigo/pr-review/internal/core"
	"github.com/sevigo/pr-review/internal/github"
	"github.com/sevigo/pr-review/internal/llm"
)

// fakeGitHub serves canned file listings and records every request.
type fakeGitHub struct {
	mu       sync.Mutex
	files    string
	gets     int
	posts    int
	comments []map[string]any
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		f.gets++
		fmt.Fprint(w, f.files)
	case http.MethodPost:
		f.posts++
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.comments = append(f.comments, body)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id": %d, "html_url": "https://github.com/acme/widgets/pull/42#issuecomment-%d"}`, f.posts, f.posts)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// stubGenerator returns a fixed review and counts calls.
type stubGenerator struct {
	review string
	calls  int
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.review, nil
}
func (s *stubGenerator) Name() string  { return "stub" }
func (s *stubGenerator) Model() string { return "stub-1" }

func newIntegrationJob(t *testing.T, fake *fakeGitHub, gen llm.Generator) core.Job {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	gh := gogithub.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = baseURL

	pm, err := llm.NewPromptManager()
	require.NoError(t, err)

	return NewReviewJob(&config.Config{},
		github.NewGitHubClient(gh, discardLogger()),
		llm.NewReviewer(pm, gen, discardLogger()),
		discardLogger())
}

func TestIntegration_PostsReviewForPatchedFiles(t *testing.T) {
	fake := &fakeGitHub{files: `[
		{"filename": "src/widget.go", "patch": "+line1"},
		{"filename": "assets/logo.png"}
	]`}
	gen := &stubGenerator{review: "Looks good."}
	job := newIntegrationJob(t, fake, gen)

	result, err := job.Run(context.Background(), core.PullRequest{Owner: "acme", Repo: "widgets", Number: 42})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.gets)
	assert.Equal(t, 1, gen.calls)
	require.Equal(t, 1, fake.posts)
	assert.Equal(t, map[string]any{"body": "Looks good."}, fake.comments[0])
	assert.True(t, result.Posted)
}

func TestIntegration_NothingToReview(t *testing.T) {
	fake := &fakeGitHub{files: `[{"filename": "assets/logo.png"}, {"filename": "docs/diagram.pdf"}]`}
	gen := &stubGenerator{review: "unused"}
	job := newIntegrationJob(t, fake, gen)

	result, err := job.Run(context.Background(), core.PullRequest{Owner: "acme", Repo: "widgets", Number: 7})
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Equal(t, 1, fake.gets)
	assert.Equal(t, 0, fake.posts)
	assert.Equal(t, 0, gen.calls)
}
