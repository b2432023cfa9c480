package cmd

import (
	"fmt"
	"strings"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/internal/outwriter"
	"github.com/mlopshq/driftmon/internal/runstore"
	"github.com/mlopshq/driftmon/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads minimal configuration needed for run-store operations.
// This is used by commands that need the run store without the workspace
// coordinates required by the full sharedSetup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run-store config values
	backend := schema.DatabaseBackend(viper.GetString("run-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	connStr := viper.GetString("run-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by list/status/export)
	mode := schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if mode == "" {
		mode = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[mode]; !ok {
		return fmt.Errorf("invalid output mode %q: must be text, csv or json", viper.GetString("output"))
	}

	// Initialize the run store with the loaded config
	if err := runstore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	cfg.Output = mode
	cfg.OutputFile = viper.GetString("output-file")
	cfg.UseColors = contract.ParseBoolish(viper.GetString("color"), true)

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("run-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	connStr := viper.GetString("run-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunDBFilePath()
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on run-history management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by remote commands. This avoids requiring
// workspace coordinates for purely local operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect and manage the local run history",
	Long: `Manage the local store of what each command created.

Every train, dataset, inference and monitor command records the resources it
created: kind, name, version, provisioning state and the raw payload. That
history answers "what did this tool actually push to the workspace, and when".

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recorded runs, newest first
  status  - Show run-store statistics
  export  - Export run history to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # What has been created so far?
  driftmon runs list

  # Export for analysis in pandas/DuckDB
  driftmon runs export --output-file runs.parquet`,
}

// runsListCmd shows the recorded runs.
var runsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show recorded runs, newest first",
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := runstore.Manager.GetRunStore().ListRuns()
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		if err := outwriter.WriteRunResults(records, cfg); err != nil {
			contract.LogFatal("Failed to write runs", err)
		}
	},
}

// runsStatusCmd shows run-store status.
var runsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display run-store statistics and connection details",
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := runstore.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run-store status", err)
		}
		if err := outwriter.WriteRunStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write run-store status", err)
		}
	},
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all recorded runs from the configured backend.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  driftmon runs export --output-file backup.parquet
  driftmon runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.Manager.GetRunStore().Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsExportCmd exports the run history to a Parquet file.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet format for use with analytics
tools such as DuckDB, Apache Spark or pandas.

Requires: --output-file parameter

Examples:
  driftmon runs export --output-file runs.parquet
  duckdb -c "SELECT * FROM read_parquet('runs.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ExecuteRunExport(runstore.Manager.GetRunStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run store.

By default, migrates to the latest version. Use --target-version for specific
versions.

Examples:
  # Migrate to latest version (default)
  driftmon runs migrate

  # Rollback to initial state
  driftmon runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
