package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mlopshq/driftmon/core"
	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/internal/runstore"
	"github.com/mlopshq/driftmon/internal/workspace"
	"github.com/mlopshq/driftmon/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// wsClient is the workspace client shared by all remote commands.
var wsClient *workspace.Client

// debugLog receives the HTTP trace when --debug-http is enabled.
var debugLog *os.File

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "driftmon",
	Short:              "Provision and verify data-drift monitoring on an Azure ML workspace.",
	Long:               `Driftmon registers datasets and models, creates drift signals and deploys monitor schedules, then verifies what the workspace actually runs.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".driftmon") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("DRIFTMON")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("datastore", contract.DefaultDatastore)
	viper.SetDefault("api-version", contract.DefaultAPIVersion)
	viper.SetDefault("timeout", "60s")
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("color", "yes")
	viper.SetDefault("run-backend", schema.SQLiteBackend)
	viper.SetDefault("run-db-connect", "")
	viper.SetDefault("signal-name", "tx_data_drift_signal")
	viper.SetDefault("schedule-name", "tx_daily_monitor")
	viper.SetDefault("baseline-dataset", "tx_training_dataset")
	viper.SetDefault("inference-path", "monitoring/inference-batches/")
	viper.SetDefault("features", strings.Join(core.FeatureNames(contract.DefaultFeatures), ","))
	viper.SetDefault("metric", schema.DefaultMetric)
	viper.SetDefault("threshold", 0.05)
	viper.SetDefault("frequency", schema.DayFrequency)
	viper.SetDefault("description", "Daily monitor for transaction model input drift")
	viper.SetDefault("samples", contract.DefaultSampleCount)
	viper.SetDefault("feature-count", contract.DefaultFeatures)
}

// sharedSetup unmarshals config, runs validation and builds the workspace
// client plus the run store. It backs PreRunE on every remote command.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Initialize the run store with validated config.
	if err := runstore.InitStores(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}

	// 5. Build the workspace client. A static token wins over az CLI login.
	var tokens workspace.TokenProvider = &workspace.AzCLIToken{}
	if cfg.AccessToken != "" {
		tokens = workspace.StaticToken(cfg.AccessToken)
	}
	var trace io.Writer
	if cfg.DebugHTTP {
		f, err := os.Create(cfg.DebugHTTPLog)
		if err != nil {
			return fmt.Errorf("cannot open debug log %s: %w", cfg.DebugHTTPLog, err)
		}
		debugLog = f
		trace = f
	}
	wsClient = workspace.NewClient(cfg, tokens, trace)

	return nil
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".driftmon")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Cleanup releases process-wide resources held by the command layer.
func Cleanup() {
	if debugLog != nil {
		_ = debugLog.Close()
	}
	if err := runstore.CloseStores(); err != nil {
		contract.LogWarn("closing run store", err)
	}
}
