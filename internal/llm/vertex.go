package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/sevigo/pr-review/internal/config"
)

// GenAIOption adjusts the genai client configuration.
type GenAIOption func(*genai.ClientConfig)

// WithGenAIEndpoint sends requests to baseURL through client. With a client
// set, genai skips Application Default Credentials lookup.
func WithGenAIEndpoint(baseURL string, client *http.Client) GenAIOption {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = baseURL
		cc.HTTPClient = client
	}
}

func newGenAIClient(ctx context.Context, cc *genai.ClientConfig, opts []GenAIOption) (*genai.Client, error) {
	for _, opt := range opts {
		opt(cc)
	}
	return genai.NewClient(ctx, cc)
}

// Vertex generates text with Gemini models served from a Vertex AI project.
// Credentials come from Application Default Credentials.
type Vertex struct {
	client *genai.Client
	model  string
}

// NewVertex creates a Vertex AI generator for ai.GCPProjectID in ai.GCPLocation.
func NewVertex(ctx context.Context, ai config.AIConfig, opts ...GenAIOption) (*Vertex, error) {
	if ai.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP_PROJECT_ID is not set in environment for vertex provider")
	}
	client, err := newGenAIClient(ctx, &genai.ClientConfig{
		Project:  ai.GCPProjectID,
		Location: ai.GCPLocation,
		Backend:  genai.BackendVertexAI,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex client: %w", err)
	}
	return &Vertex{client: client, model: ai.GeneratorModel}, nil
}

func (v *Vertex) Name() string  { return config.ProviderVertex }
func (v *Vertex) Model() string { return v.model }

func (v *Vertex) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := v.client.Models.GenerateContent(ctx, v.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
