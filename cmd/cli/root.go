package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sevigo/pr-review/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pr-review",
	Short: "pr-review posts an LLM-generated code review on a GitHub pull request.",
	Long: `pr-review fetches the diff of a pull request, asks a generative model for a
review and posts the answer as a comment on the pull request.

Configuration is read from the environment (and a local .env file); flags
override the environment. Running without a subcommand is the same as
"pr-review review".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReview,
}

// flagKeys maps persistent flags to the configuration keys they override.
var flagKeys = map[string]string{
	"pr":           config.KeyPRNumber,
	"repo":         config.KeyRepository,
	"pr-url":       config.KeyPRURL,
	"github-token": config.KeyGitHubToken,
	"provider":     config.KeyLLMProvider,
	"model":        config.KeyGeneratorModel,
	"dry-run":      config.KeyDryRun,
	"log-level":    config.KeyLogLevel,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("pr", "", "Pull request number (env PR_NUMBER)")
	flags.String("repo", "", "Repository as owner/name (env GITHUB_REPOSITORY)")
	flags.String("pr-url", "", "Pull request URL, e.g. https://github.com/owner/repo/pull/123")
	flags.StringP("github-token", "t", "", "GitHub token (env GITHUB_TOKEN)")
	flags.String("provider", "", "LLM provider: gemini, vertex, ollama or anthropic (env LLM_PROVIDER)")
	flags.String("model", "", "Generator model name (env GENERATOR_MODEL_NAME)")
	flags.Bool("dry-run", false, "Render the review in the terminal instead of posting it")
	flags.String("log-level", "", "Log level: debug, info, warn or error (env LOG_LEVEL)")

	if err := bindFlags(viper.GetViper(), flags); err != nil {
		fmt.Fprintf(os.Stderr, "error binding flags: %v\n", err)
		os.Exit(1)
	}
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// initConfig loads a local .env file, if any, and enables environment lookup.
func initConfig() {
	if err := config.LoadDotEnv(".env"); err != nil {
		warnColor.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	viper.AutomaticEnv()
}
