package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/sevigo/pr-review/internal/config"
)

// ModelInfo describes a model visible to the configured credentials.
type ModelInfo struct {
	Name        string
	DisplayName string
}

// ListModels lists the models available to the Gemini API key or the
// Vertex AI project in ai.
func ListModels(ctx context.Context, ai config.AIConfig, opts ...GenAIOption) ([]ModelInfo, error) {
	cc := &genai.ClientConfig{}
	switch ai.LLMProvider {
	case config.ProviderGemini:
		cc.APIKey = ai.GeminiAPIKey
		cc.Backend = genai.BackendGeminiAPI
	case config.ProviderVertex:
		cc.Project = ai.GCPProjectID
		cc.Location = ai.GCPLocation
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("listing models is not supported for provider %q", ai.LLMProvider)
	}

	client, err := newGenAIClient(ctx, cc, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	var models []ModelInfo
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		models = append(models, ModelInfo{Name: m.Name, DisplayName: m.DisplayName})
	}
	return models, nil
}
