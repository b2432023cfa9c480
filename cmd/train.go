package cmd

import (
	"github.com/mlopshq/driftmon/core"
	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/internal/runstore"
	"github.com/spf13/cobra"
)

// trainCmd generates training data, fits a model and registers both.
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Generate training data, fit a model and register both assets.",
	Long: `Generate a synthetic binary classification dataset, train a
logistic-regression model on it locally, and register the dataset and the
model with the workspace.

The dataset is written to train.csv and registered under --baseline-dataset;
the model weights are written to model.json and registered as
<baseline-dataset>_model. Both registrations are recorded in the run store.

Examples:
  # Train with defaults (2000 samples, 5 features)
  driftmon train

  # Larger dataset with a fixed seed
  driftmon train --samples 10000 --feature-count 8 --seed 42`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrainRegister(rootCtx, cfg, wsClient, runstore.Manager); err != nil {
			contract.LogFatal("Cannot run training", err)
		}
	},
}
