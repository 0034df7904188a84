package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-review/internal/config"
)

// clearGoogleEnv keeps ambient Google credentials from changing client setup.
func clearGoogleEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_API_KEY", "GEMINI_API_KEY", "GOOGLE_CLOUD_PROJECT", "GOOGLE_CLOUD_LOCATION",
		"GOOGLE_CLOUD_REGION", "GOOGLE_GENAI_USE_VERTEXAI", "GOOGLE_VERTEX_BASE_URL", "GOOGLE_GEMINI_BASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestVertex_Generate(t *testing.T) {
	clearGoogleEnv(t)

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "projects/my-project/locations/us-central1")
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-1.5-flash:generateContent"), r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, fmt.Sprint(body["contents"]), "+line1")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates": [{"content": {"role": "model", "parts": [{"text": "Looks good."}]}}]}`)
	}))
	defer server.Close()

	ai := config.AIConfig{
		LLMProvider:    config.ProviderVertex,
		GeneratorModel: "gemini-1.5-flash",
		GCPProjectID:   "my-project",
		GCPLocation:    "us-central1",
	}
	gen, err := NewVertex(context.Background(), ai, WithGenAIEndpoint(server.URL+"/", server.Client()))
	require.NoError(t, err)
	assert.Equal(t, "vertex", gen.Name())

	text, err := gen.Generate(context.Background(), "review this\n\n+line1")
	require.NoError(t, err)
	assert.Equal(t, "Looks good.", text)
	assert.Equal(t, 1, calls)
}

func TestVertex_GenerateError(t *testing.T) {
	clearGoogleEnv(t)

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`)
	}))
	defer server.Close()

	ai := config.AIConfig{GeneratorModel: "gemini-1.5-flash", GCPProjectID: "my-project", GCPLocation: "us-central1"}
	gen, err := NewVertex(context.Background(), ai, WithGenAIEndpoint(server.URL+"/", server.Client()))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "review this")
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Equal(t, 1, calls)
}

func TestListModels(t *testing.T) {
	clearGoogleEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models"), r.URL.Path)
		assert.Equal(t, "gm-key", r.Header.Get("X-Goog-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"models": [
			{"name": "models/gemini-1.5-flash", "displayName": "Gemini 1.5 Flash"},
			{"name": "models/gemini-1.5-pro"}
		]}`)
	}))
	defer server.Close()

	ai := config.AIConfig{LLMProvider: config.ProviderGemini, GeminiAPIKey: "gm-key"}
	models, err := ListModels(context.Background(), ai, WithGenAIEndpoint(server.URL+"/", server.Client()))
	require.NoError(t, err)
	assert.Equal(t, []ModelInfo{
		{Name: "models/gemini-1.5-flash", DisplayName: "Gemini 1.5 Flash"},
		{Name: "models/gemini-1.5-pro"},
	}, models)
}

func TestListModels_UnsupportedProvider(t *testing.T) {
	_, err := ListModels(context.Background(), config.AIConfig{LLMProvider: config.ProviderOllama})
	assert.ErrorContains(t, err, "not supported")
}
