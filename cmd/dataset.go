package cmd

import (
	"github.com/mlopshq/driftmon/core"
	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/internal/runstore"
	"github.com/spf13/cobra"
)

// datasetCmd groups dataset asset operations.
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage dataset assets in the workspace",
}

// datasetRegisterCmd wraps the local CSVs into MLTable folders and registers them.
var datasetRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Wrap the training and inference CSVs as MLTable assets.",
	Long: `Build MLTable folders for the training and inference CSVs and register
both as mltable data assets, the form the monitoring signals consume.

Requires train.csv (from 'driftmon train') and inference_batch.csv (from
'driftmon inference upload') in the working directory.

Examples:
  driftmon train
  driftmon inference upload
  driftmon dataset register`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDatasetRegister(rootCtx, cfg, wsClient, runstore.Manager); err != nil {
			contract.LogFatal("Cannot register datasets", err)
		}
	},
}
