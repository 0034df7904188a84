// Package app holds the components of a single review run.
package app

import (
	"context"
	"log/slog"

	"github.com/sevigo/pr-review/internal/config"
	"github.com/sevigo/pr-review/internal/core"
)

// App holds the main application components.
type App struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Job    core.Job
}

// NewApp sets up the application with its dependencies.
func NewApp(cfg *config.Config, job core.Job, logger *slog.Logger) *App {
	return &App{Cfg: cfg, Logger: logger, Job: job}
}

// Run reviews the configured pull request once.
func (a *App) Run(ctx context.Context) (*core.ReviewResult, error) {
	a.Logger.Info("starting pr-review", "config", a.Cfg)

	result, err := a.Job.Run(ctx, a.Cfg.PullRequest)
	if err != nil {
		a.Logger.Error("review run failed", "pr", a.Cfg.PullRequest.String(), "error", err)
		return nil, err
	}
	return result, nil
}
