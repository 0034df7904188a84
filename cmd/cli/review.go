package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/pr-review/internal/config"
	"github.com/sevigo/pr-review/internal/core"
	"github.com/sevigo/pr-review/internal/wire"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var reviewCmd = &cobra.Command{
	Use:   "review [pr-url]",
	Short: "Review a pull request and post the result as a comment",
	Long: `Review a pull request and post the result as a comment.

The pull request comes from the optional URL argument, --pr-url, or
GITHUB_REPOSITORY and PR_NUMBER.

Examples:
  pr-review review https://github.com/owner/repo/pull/123
  PR_NUMBER=123 GITHUB_REPOSITORY=owner/repo pr-review review
  pr-review review --dry-run --provider ollama https://github.com/owner/repo/pull/123`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 1 {
		viper.Set(config.KeyPRURL, args[0])
	}

	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	appInstance, cleanup, err := wire.InitializeApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer cleanup()

	result, err := appInstance.Run(ctx)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), result)
}

// printResult writes the one-line status of a run. Dry runs print the
// rendered review instead.
func printResult(w io.Writer, result *core.ReviewResult) error {
	switch {
	case result.Skipped:
		warnColor.Fprintln(w, "No diff to review.")
	case result.Posted:
		successColor.Fprintf(w, "Review posted: %s\n", result.Comment.URL)
	default:
		dimColor.Fprintf(w, "Dry run: review for %s was not posted.\n", result.PullRequest)
		rendered, err := glamour.Render(result.Review, "auto")
		if err != nil {
			rendered = result.Review + "\n"
		}
		if _, err := fmt.Fprint(w, rendered); err != nil {
			return err
		}
	}
	return nil
}
