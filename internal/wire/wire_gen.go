// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/pr-review/internal/app"
	"github.com/sevigo/pr-review/internal/config"
	"github.com/sevigo/pr-review/internal/github"
	"github.com/sevigo/pr-review/internal/jobs"
	"github.com/sevigo/pr-review/internal/llm"
	"github.com/sevigo/pr-review/internal/logger"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context, cfg *config.Config) (*app.App, func(), error) {
	// Setup logger
	slogLogger := provideSlogLogger(cfg)

	// GitHub Client
	ghClient, err := github.NewClient(ctx, cfg, slogLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	// Generator LLM
	generator, err := llm.NewGenerator(ctx, cfg, slogLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}

	// Prompt Manager
	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	// Reviewer
	reviewer := llm.NewReviewer(promptMgr, generator, slogLogger)

	// Review Job
	reviewJob := jobs.NewReviewJob(cfg, ghClient, reviewer, slogLogger)

	// App
	application := app.NewApp(cfg, reviewJob, slogLogger)

	cleanup := func() {}

	return application, cleanup, nil
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	l := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(l)
	return l
}
