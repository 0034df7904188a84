package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/pr-review/internal/config"
	"github.com/sevigo/pr-review/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available to the configured Gemini or Vertex AI credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ai, err := config.LoadAIConfig(viper.GetViper())
		if err != nil {
			return err
		}

		models, err := llm.ListModels(cmd.Context(), *ai)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Models available to %s:\n", ai.LLMProvider)
		for _, m := range models {
			if m.DisplayName != "" {
				fmt.Fprintf(out, "- %s (%s)\n", m.Name, m.DisplayName)
				continue
			}
			fmt.Fprintf(out, "- %s\n", m.Name)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(modelsCmd)
}
