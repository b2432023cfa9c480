package cmd

import (
	"github.com/mlopshq/driftmon/core"
	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/internal/runstore"
	"github.com/spf13/cobra"
)

// inferenceCmd groups inference data operations.
var inferenceCmd = &cobra.Command{
	Use:   "inference",
	Short: "Manage simulated production inference data",
}

// inferenceUploadCmd generates and registers an inference batch.
var inferenceUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Generate an inference batch and register it under the datastore.",
	Long: `Generate a small simulated inference batch, write it to
inference_batch.csv and register it as a uri_file asset pointing at the
configured datastore path. The monitoring signals read production data
from that path.

Examples:
  # Upload with defaults
  driftmon inference upload

  # Target a different datastore folder
  driftmon inference upload --datastore mystore --inference-path monitoring/batches/`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInferenceUpload(rootCtx, cfg, wsClient, runstore.Manager); err != nil {
			contract.LogFatal("Cannot upload inference batch", err)
		}
	},
}
