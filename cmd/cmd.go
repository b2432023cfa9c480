// Package cmd defines the command-line interface for driftmon.
package cmd

import (
	"strings"

	"github.com/mlopshq/driftmon/core"
	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(inferenceCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the dataset and inference subcommands to their parents
	datasetCmd.AddCommand(datasetRegisterCmd)
	inferenceCmd.AddCommand(inferenceUploadCmd)

	// Add the monitor subcommands to the parent monitor command
	monitorCmd.AddCommand(monitorCreateCmd)
	monitorCmd.AddCommand(monitorDeployCmd)
	monitorCmd.AddCommand(monitorVerifyCmd)
	monitorCmd.AddCommand(monitorProbeCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("subscription-id", "", "Azure subscription id that owns the workspace")
	rootCmd.PersistentFlags().String("resource-group", "", "Resource group containing the workspace")
	rootCmd.PersistentFlags().StringP("workspace", "w", "", "Azure ML workspace name")
	rootCmd.PersistentFlags().String("datastore", contract.DefaultDatastore, "Datastore backing inference uploads")
	rootCmd.PersistentFlags().String("alert-email", "", "E-mail address for monitor alert notifications")
	rootCmd.PersistentFlags().String("access-token", "", "Static ARM bearer token (defaults to az CLI login when empty)")
	rootCmd.PersistentFlags().String("api-version", contract.DefaultAPIVersion, "Management API version for workspace calls")
	rootCmd.PersistentFlags().String("timeout", "60s", "HTTP timeout for workspace calls")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("debug-http", false, "Write HTTP trace and created-object dumps to the debug log")
	rootCmd.PersistentFlags().String("debug-http-log", "", "Path for the HTTP trace log")
	rootCmd.PersistentFlags().String("run-backend", string(schema.SQLiteBackend), "Run-store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("baseline-dataset", "tx_training_dataset", "Name of the registered training dataset")
	rootCmd.PersistentFlags().String("inference-path", "monitoring/inference-batches/", "Datastore path that receives inference batches")
	rootCmd.PersistentFlags().Int("samples", contract.DefaultSampleCount, "Number of rows to generate for synthetic datasets")
	rootCmd.PersistentFlags().Int("feature-count", contract.DefaultFeatures, "Number of feature columns to generate")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed for dataset generation (0 = deterministic default)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all persistent flags of monitorCmd to Viper
	monitorCmd.PersistentFlags().String("signal-name", "tx_data_drift_signal", "Name of the drift signal")
	monitorCmd.PersistentFlags().String("schedule-name", "tx_daily_monitor", "Name of the monitor schedule")
	monitorCmd.PersistentFlags().String("features", strings.Join(core.FeatureNames(contract.DefaultFeatures), ","), "Comma-separated list of features to monitor")
	monitorCmd.PersistentFlags().String("metric", schema.DefaultMetric, "Drift metric name")
	monitorCmd.PersistentFlags().Float64("threshold", 0.05, "Alerting threshold for the drift metric")
	monitorCmd.PersistentFlags().String("frequency", string(schema.DayFrequency), "Schedule cadence: Day, Week or Month")
	monitorCmd.PersistentFlags().String("description", "Daily monitor for transaction model input drift", "Schedule description")
	if err := viper.BindPFlags(monitorCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding monitor flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
