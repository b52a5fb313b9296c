package main

import (
	"fmt"
	"strings"

	"blast-detection-api/pipeline"

	"github.com/spf13/cobra"
)

var (
	pipelineEpochs     int
	pipelineTag        string
	pipelineModelsDir  string
	pipelineReportsDir string
	pipelineTrainCmd   string
	pipelineEvalCmd    string
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the end-to-end pipeline: train -> evaluate",
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := pipeline.Run(cmd.Context(), pipeline.Options{
			TrainCmd:   strings.Fields(pipelineTrainCmd),
			EvalCmd:    strings.Fields(pipelineEvalCmd),
			ModelsDir:  pipelineModelsDir,
			ReportsDir: pipelineReportsDir,
			Tag:        pipelineTag,
			Epochs:     pipelineEpochs,
		})
		if err != nil {
			return err
		}

		fmt.Println("\nPipeline complete")
		fmt.Println("Model:", modelPath)
		fmt.Printf("Reports: %s/confusion_matrix.png , %s/metrics.json\n",
			pipelineReportsDir, pipelineReportsDir)
		return nil
	},
}

func init() {
	pipelineCmd.Flags().IntVar(&pipelineEpochs, "epochs", 30,
		"max training epochs (early stopping may stop earlier)")
	pipelineCmd.Flags().StringVar(&pipelineTag, "tag", "",
		"optional tag to include in the model filename (e.g. v1, aug, lr1e-3)")
	pipelineCmd.Flags().StringVar(&pipelineModelsDir, "models-dir", "models",
		"directory holding model artifacts")
	pipelineCmd.Flags().StringVar(&pipelineReportsDir, "reports-dir", "reports",
		"directory for metrics and run logs")
	pipelineCmd.Flags().StringVar(&pipelineTrainCmd, "train-cmd", "python src/train.py",
		"command for the training stage")
	pipelineCmd.Flags().StringVar(&pipelineEvalCmd, "eval-cmd", "python src/evaluate.py",
		"command for the evaluation stage")
}
