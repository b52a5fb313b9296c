package main

import (
	"fmt"

	"blast-detection-api/services"

	"github.com/spf13/cobra"
)

var (
	inferModel     string
	inferThreshold float64
	inferScorerURL string
)

var inferCmd = &cobra.Command{
	Use:   "infer <image>",
	Short: "Classify a single leaf image (blast vs healthy)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		predictor := services.NewPredictorService(services.NewHTTPScorerLoader(inferScorerURL))

		pred, err := predictor.Predict(cmd.Context(), inferModel, args[0], inferThreshold)
		if err != nil {
			return err
		}

		fmt.Println("\n=== Prediction ===")
		fmt.Println("Image      :", pred.ImagePath)
		fmt.Println("Predicted  :", pred.Predicted)
		fmt.Printf("P(blast)   : %.4f\n", pred.ProbBlast)
		fmt.Printf("P(healthy) : %.4f\n", pred.ProbHealthy)
		fmt.Println("Threshold  :", pred.Threshold)
		return nil
	},
}

func init() {
	inferCmd.Flags().StringVar(&inferModel, "model", "models/rice_leaf_blast_cnn.keras",
		"path to the model artifact")
	inferCmd.Flags().Float64Var(&inferThreshold, "threshold", 0.5,
		"decision threshold for predicting healthy (prob_healthy >= threshold => healthy)")
	inferCmd.Flags().StringVar(&inferScorerURL, "scorer-url", "http://localhost:8501",
		"base URL of the scorer sidecar")
}
