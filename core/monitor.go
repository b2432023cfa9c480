// Package core holds the domain logic behind every driftmon command.
package core

import (
	"context"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

// DriftSignalParams are the plain inputs for BuildDriftSignal. They are
// caller-supplied parameters, never environment-derived, so the builder stays
// testable independent of process environment.
type DriftSignalParams struct {
	Name            string
	BaselineDataset string
	DatastoreName   string
	Path            string
	Features        []string
	Metric          string
	Threshold       float64
}

// MonitorScheduleParams are the plain inputs for BuildMonitorSchedule.
type MonitorScheduleParams struct {
	Name        string
	SignalName  string
	Frequency   schema.Frequency
	Description string
}

// BuildDriftSignal constructs a DriftSignal descriptor and registers it
// through the supplied registrar. The baseline reference is the scheme prefix
// plus the dataset name; the target reference points at the datastore path
// with its trailing slash normalized. Features, metric and threshold pass
// through unchanged, in order, with no validation; the remote service owns
// semantic checks.
//
// Registrar failures propagate unchanged, with no retry. A nil registrar (or
// contract.NoopSignals) means the client lacks the capability: the call is
// skipped and the descriptor is still returned.
func BuildDriftSignal(ctx context.Context, registrar contract.SignalRegistrar, p DriftSignalParams) (*schema.DriftSignal, error) {
	signal := &schema.DriftSignal{
		Name:         p.Name,
		BaselineData: schema.DatasetReference(p.BaselineDataset),
		TargetData:   schema.DatastorePathReference(p.DatastoreName, p.Path),
		Features:     p.Features,
		Metric:       p.Metric,
		Threshold:    p.Threshold,
	}

	if registrar == nil {
		registrar = contract.NoopSignals{}
	}
	if _, err := registrar.UpsertSignal(ctx, signal); err != nil {
		return nil, err
	}

	return signal, nil
}

// BuildMonitorSchedule constructs a MonitorSchedule descriptor wrapping a
// single signal name and registers it through the supplied registrar. The
// signals list always has exactly one element; multi-signal schedules are out
// of scope. Registration follows the same skip-or-propagate contract as
// BuildDriftSignal.
func BuildMonitorSchedule(ctx context.Context, registrar contract.ScheduleRegistrar, p MonitorScheduleParams) (*schema.MonitorSchedule, error) {
	sched := &schema.MonitorSchedule{
		Name:        p.Name,
		Signals:     []string{p.SignalName},
		Frequency:   string(p.Frequency),
		Description: p.Description,
	}

	if registrar == nil {
		registrar = contract.NoopSchedules{}
	}
	if _, err := registrar.UpsertSchedule(ctx, sched); err != nil {
		return nil, err
	}

	return sched, nil
}
