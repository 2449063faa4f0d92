package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/model"
)

var (
	searchLocation      string
	searchBusinessType  string
	searchKeywords      []string
	searchLocationTerms []string
	searchMaxResults    int
	searchPremium       bool
	searchSeedURL       string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one lead search and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := initSearchEnv(searchSeedURL)

		session := model.NewSearchSession(
			searchLocation,
			searchBusinessType,
			searchKeywords,
			searchLocationTerms,
			searchMaxResults,
			searchPremium,
		)

		result := env.Pipeline.Run(cmd.Context(), session)

		zap.L().Info("search finished",
			zap.Bool("success", result.Success),
			zap.Int("total_found", result.TotalFound),
			zap.Int("returned", result.ReturnedCount),
			zap.Int("improved", result.Improved),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "searched location, e.g. \"Dublin\" (required)")
	searchCmd.Flags().StringVar(&searchBusinessType, "business-type", "", "business type, e.g. \"cafe\" (required)")
	searchCmd.Flags().StringSliceVar(&searchKeywords, "keywords", nil, "business type keywords (default: the business type)")
	searchCmd.Flags().StringSliceVar(&searchLocationTerms, "location-terms", nil, "location variants (default: the location)")
	searchCmd.Flags().IntVar(&searchMaxResults, "max-results", 0, "result ceiling (default from config)")
	searchCmd.Flags().BoolVar(&searchPremium, "premium", false, "run as a premium caller (no result truncation)")
	searchCmd.Flags().StringVar(&searchSeedURL, "seed-url", "", "additionally scrape one known business URL")
	_ = searchCmd.MarkFlagRequired("location")
	_ = searchCmd.MarkFlagRequired("business-type")
	rootCmd.AddCommand(searchCmd)
}
