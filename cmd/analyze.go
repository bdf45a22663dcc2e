package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/recipe-cli/internal/pipeline"
)

var (
	analyzeIngredient string
	analyzePreference string
	analyzeMaxResults int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Find a recipe for an ingredient and analyze its nutrition",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		report, err := env.Pipeline.Analyze(ctx, pipeline.Request{
			Ingredient: analyzeIngredient,
			Preference: analyzePreference,
			MaxResults: analyzeMaxResults,
		})
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		zap.L().Info("analysis complete",
			zap.String("title", report.Recipe.Title),
			zap.String("source_url", report.Recipe.SourceURL),
			zap.Int("ingredients", len(report.Recipe.Ingredients)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeIngredient, "ingredient", "", "main ingredient to search for (required)")
	analyzeCmd.Flags().StringVar(&analyzePreference, "preference", "", "dietary preference appended to the search query")
	analyzeCmd.Flags().IntVar(&analyzeMaxResults, "max-results", 0, "max candidate URLs to try (default 4)")
	_ = analyzeCmd.MarkFlagRequired("ingredient")
	rootCmd.AddCommand(analyzeCmd)
}
