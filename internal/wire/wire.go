//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/pr-review/internal/app"
	"github.com/sevigo/pr-review/internal/config"
	"github.com/sevigo/pr-review/internal/github"
	"github.com/sevigo/pr-review/internal/jobs"
	"github.com/sevigo/pr-review/internal/llm"
	"github.com/sevigo/pr-review/internal/logger"
)

func InitializeApp(ctx context.Context, cfg *config.Config) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		github.NewClient,
		llm.NewGenerator,
		llm.NewPromptManager,
		llm.NewReviewer,
		jobs.NewReviewJob,
		provideSlogLogger,
	)
	return &app.App{}, nil, nil
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	l := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(l)
	return l
}
