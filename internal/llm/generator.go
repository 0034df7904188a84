// Package llm turns a pull request diff into review text using a
// configurable generative model.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/pr-review/internal/config"
)

// Generator submits a prompt to a model and returns the produced text.
//
//go:generate mockgen -destination=../../mocks/mock_generator.go -package=mocks . Generator
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name is the provider name, e.g. "gemini".
	Name() string
	Model() string
}

// NewGenerator creates the generator for the configured provider.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Generator, error) {
	ai := cfg.AI
	logger.Info("creating generator", "provider", ai.LLMProvider, "model", ai.GeneratorModel)

	switch ai.LLMProvider {
	case config.ProviderGemini:
		if ai.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		model, err := gemini.New(ctx,
			gemini.WithModel(ai.GeneratorModel),
			gemini.WithAPIKey(ai.GeminiAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return newModelGenerator(config.ProviderGemini, ai.GeneratorModel, model), nil

	case config.ProviderOllama:
		model, err := ollama.New(
			ollama.WithServerURL(ai.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(ai.GeneratorModel),
			ollama.WithLogger(logger),
			ollama.WithRetryAttempts(0),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama model: %w", err)
		}
		return newModelGenerator(config.ProviderOllama, ai.GeneratorModel, model), nil

	case config.ProviderVertex:
		vertex, err := NewVertex(ctx, ai)
		if err != nil {
			return nil, err
		}
		return vertex, nil

	case config.ProviderAnthropic:
		return NewAnthropic(ai), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", ai.LLMProvider)
	}
}

// modelGenerator adapts a goframe model to Generator.
type modelGenerator struct {
	provider string
	model    string
	llm      llms.Model
}

func newModelGenerator(provider, model string, llm llms.Model) *modelGenerator {
	return &modelGenerator{provider: provider, model: model, llm: llm}
}

func (g *modelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
}

func (g *modelGenerator) Name() string  { return g.provider }
func (g *modelGenerator) Model() string { return g.model }

// newOllamaHTTPClient creates an HTTP client with longer timeouts for Ollama requests.
// Local models can take minutes on a large diff.
func newOllamaHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
}
