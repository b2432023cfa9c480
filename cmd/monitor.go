package cmd

import (
	"github.com/mlopshq/driftmon/core"
	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/internal/runstore"
	"github.com/spf13/cobra"
)

// monitorCmd groups drift-monitor operations.
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Create, deploy and verify drift monitors",
	Long: `Manage data-drift monitoring on the workspace.

Subcommands:
  create - Build and register a drift signal plus a flat schedule
  deploy - Assemble and submit the full monitor schedule resource
  verify - List workspace schedules and their provisioning state
  probe  - Sweep management api-versions against the monitoring endpoints`,
}

// monitorCreateCmd registers the drift signal and schedule descriptors.
var monitorCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Build and register a drift signal and monitor schedule.",
	Long: `Build a drift-signal descriptor (baseline dataset vs datastore path,
feature list, metric, threshold) and a monitor-schedule descriptor referencing
it, then register both with the workspace. Created resources are recorded in
the run store; pass --debug-http to also dump the created objects as JSON.

Examples:
  # Create with defaults
  driftmon monitor create

  # Custom signal parameters
  driftmon monitor create --features feature_0,feature_1 --metric population_stability_index --threshold 0.1`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMonitorCreate(rootCtx, cfg, wsClient, wsClient, runstore.Manager); err != nil {
			contract.LogFatal("Cannot create monitor", err)
		}
	},
}

// monitorDeployCmd submits the full monitor schedule resource.
var monitorDeployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Assemble and submit the full monitor schedule.",
	Long: `Assemble the complete monitor schedule: serverless Spark compute,
monitoring target, reference data (training MLTable), production data
(inference MLTable with a lookback window), the advanced drift signal with
metric thresholds, alert notification and a daily recurrence trigger, then
upsert it as one resource.

Requires the MLTable assets from 'driftmon dataset register'.

Examples:
  driftmon monitor deploy
  driftmon monitor deploy --frequency Week --alert-email team@example.com`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMonitorDeploy(rootCtx, cfg, wsClient, runstore.Manager); err != nil {
			contract.LogFatal("Cannot deploy monitor", err)
		}
	},
}

// monitorVerifyCmd lists schedules and their provisioning state.
var monitorVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "List workspace schedules and their provisioning state.",
	Long: `List every schedule the workspace knows about, distinguishing drift
monitors from general schedules, with provisioning state, trigger cadence and
signal names. Renders a table by default; use --output csv or json for
machine-readable output.

Examples:
  driftmon monitor verify
  driftmon monitor verify --output csv --output-file schedules.csv`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMonitorVerify(rootCtx, cfg, wsClient); err != nil {
			contract.LogFatal("Cannot verify monitors", err)
		}
	},
}

// monitorProbeCmd sweeps api-versions against the monitoring endpoints.
var monitorProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe management api-versions for the monitoring endpoints.",
	Long: `Issue raw GETs against the monitorSchedules and monitorSignals
workspace endpoints for every known management api-version and report the
status codes. Useful when a workspace rejects the configured --api-version.

The full result set is also saved to monitor_api_probe.json unless
--output-file redirects it.

Examples:
  driftmon monitor probe
  driftmon monitor probe --output json --output-file probe.json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMonitorProbe(rootCtx, cfg, wsClient); err != nil {
			contract.LogFatal("Cannot probe monitor endpoints", err)
		}
	},
}
