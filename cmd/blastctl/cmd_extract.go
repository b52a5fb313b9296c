package main

import (
	"fmt"

	"blast-detection-api/config"
	"blast-detection-api/services"

	"github.com/spf13/cobra"
)

var extractRiskCmd = &cobra.Command{
	Use:   "extract-risk",
	Short: "Fetch the pilot-area NDVI series and rewrite the risk features CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		src := services.NewHTTPNDVIClient(cfg.Satellite.BaseURL)
		n, err := services.ExtractRiskFeatures(
			cmd.Context(),
			src,
			services.QueryFromConfig(cfg.Satellite),
			cfg.Satellite.FeaturesPath,
		)
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d risk readings to %s\n", n, cfg.Satellite.FeaturesPath)
		return nil
	},
}
