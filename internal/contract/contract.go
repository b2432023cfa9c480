// Package contract provides interfaces and shared utilities for the driftmon CLI's internal architecture.
package contract

import (
	"context"

	"github.com/mlopshq/driftmon/schema"
)

// SignalRegistrar is the optional signal-registration capability of a
// workspace client. Upsert has create-or-update semantics keyed by the
// descriptor's name; it returns whatever the remote side reports back.
type SignalRegistrar interface {
	UpsertSignal(ctx context.Context, signal *schema.DriftSignal) (*schema.DriftSignal, error)
}

// ScheduleRegistrar is the optional schedule-registration capability of a
// workspace client.
type ScheduleRegistrar interface {
	UpsertSchedule(ctx context.Context, sched *schema.MonitorSchedule) (*schema.MonitorSchedule, error)
}

// AssetRegistrar registers dataset and model assets with the workspace.
type AssetRegistrar interface {
	UpsertData(ctx context.Context, asset *schema.DataAsset) (*schema.DataAsset, error)
	UpsertModel(ctx context.Context, model *schema.ModelAsset) (*schema.ModelAsset, error)
}

// MonitorDeployer submits full monitor schedule resources.
type MonitorDeployer interface {
	UpsertMonitorSchedule(ctx context.Context, res *schema.MonitorScheduleResource) (*schema.ScheduleSummary, error)
}

// ScheduleLister enumerates the schedules known to the workspace.
type ScheduleLister interface {
	ListSchedules(ctx context.Context) ([]schema.ScheduleSummary, error)
}

// NoopSignals is the null-object stand-in for a client without the
// signal-registration capability. Builders run against it unchanged and the
// descriptor is still returned to the caller.
type NoopSignals struct{}

// UpsertSignal does nothing and reports no remote object.
func (NoopSignals) UpsertSignal(_ context.Context, _ *schema.DriftSignal) (*schema.DriftSignal, error) {
	return nil, nil
}

// NoopSchedules is the null-object stand-in for a client without the
// schedule-registration capability.
type NoopSchedules struct{}

// UpsertSchedule does nothing and reports no remote object.
func (NoopSchedules) UpsertSchedule(_ context.Context, _ *schema.MonitorSchedule) (*schema.MonitorSchedule, error) {
	return nil, nil
}

// APIProber issues raw GET probes against workspace child endpoints under a
// chosen api-version. Non-2xx responses are results, not errors; only
// transport failures surface as errors.
type APIProber interface {
	Probe(ctx context.Context, apiVersion, endpoint string) (schema.ProbeResult, error)
}

// RunRecorder persists what a command created, for later inspection.
// This allows the run store to be mocked for testing.
type RunRecorder interface {
	RecordRun(rec *schema.RunRecord) error
}

// RunManager hands out the configured run store.
type RunManager interface {
	GetRunStore() RunStore
}

// RunStore is the full run-tracking surface: recording plus inspection.
type RunStore interface {
	RunRecorder
	ListRuns() ([]schema.RunRecord, error)
	GetStatus() (*RunStoreStatus, error)
	Clear() error
	Close() error
}

// RunStoreStatus summarizes the run store for the status command.
type RunStoreStatus struct {
	Backend      schema.DatabaseBackend
	TotalRecords int64
	OldestRecord string
	NewestRecord string
}
