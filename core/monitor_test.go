package core

import (
	"context"
	"errors"
	"testing"

	"github.com/mlopshq/driftmon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSignals captures every upsert payload for assertions.
type recordingSignals struct {
	created []schema.DriftSignal
	err     error
}

func (r *recordingSignals) UpsertSignal(_ context.Context, s *schema.DriftSignal) (*schema.DriftSignal, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.created = append(r.created, *s)
	return s, nil
}

// recordingSchedules captures every upsert payload for assertions.
type recordingSchedules struct {
	created []schema.MonitorSchedule
	err     error
}

func (r *recordingSchedules) UpsertSchedule(_ context.Context, s *schema.MonitorSchedule) (*schema.MonitorSchedule, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.created = append(r.created, *s)
	return s, nil
}

func TestBuildDriftSignalCreatesSignalAndCallsRegistrar(t *testing.T) {
	reg := &recordingSignals{}

	signal, err := BuildDriftSignal(context.Background(), reg, DriftSignalParams{
		Name:            "test-signal",
		BaselineDataset: "train_ds",
		DatastoreName:   "ds1",
		Path:            "monitoring/inference",
		Features:        []string{"f1", "f2"},
		Metric:          "psi",
		Threshold:       0.1,
	})
	require.NoError(t, err)

	// Verify returned descriptor has expected values
	assert.Equal(t, "test-signal", signal.Name)
	assert.Equal(t, "azureml:train_ds", signal.BaselineData)
	assert.Contains(t, signal.TargetData, "datastores/ds1")
	assert.Equal(t, []string{"f1", "f2"}, signal.Features)
	assert.Equal(t, "psi", signal.Metric)
	assert.Equal(t, 0.1, signal.Threshold)

	// Verify the registrar recorded exactly one upsert matching the descriptor
	require.Len(t, reg.created, 1)
	assert.Equal(t, *signal, reg.created[0])
}

func TestBuildDriftSignalTargetPathNormalization(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"no trailing slash", "monitoring/inference-batches"},
		{"one trailing slash", "monitoring/inference-batches/"},
		{"many trailing slashes", "monitoring/inference-batches///"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal, err := BuildDriftSignal(context.Background(), &recordingSignals{}, DriftSignalParams{
				Name:            "sig",
				BaselineDataset: "train_ds",
				DatastoreName:   "store",
				Path:            tt.path,
			})
			require.NoError(t, err)
			assert.Equal(t, "azureml://datastores/store/paths/monitoring/inference-batches/", signal.TargetData)
		})
	}
}

func TestBuildDriftSignalPassthrough(t *testing.T) {
	// Features order, metric and threshold must survive unchanged, including
	// duplicates and an out-of-range threshold: validation is the platform's job.
	features := []string{"f3", "f1", "f1"}
	signal, err := BuildDriftSignal(context.Background(), &recordingSignals{}, DriftSignalParams{
		Name:            "sig",
		BaselineDataset: "base",
		DatastoreName:   "store",
		Path:            "p",
		Features:        features,
		Metric:          "jensen_shannon",
		Threshold:       -3.5,
	})
	require.NoError(t, err)
	assert.Equal(t, features, signal.Features)
	assert.Equal(t, "jensen_shannon", signal.Metric)
	assert.Equal(t, -3.5, signal.Threshold)
}

func TestBuildDriftSignalWithoutCapability(t *testing.T) {
	// A nil registrar means the client lacks signal registration; the builder
	// still returns a fully populated descriptor.
	signal, err := BuildDriftSignal(context.Background(), nil, DriftSignalParams{
		Name:            "sig",
		BaselineDataset: "train_ds",
		DatastoreName:   "ds1",
		Path:            "monitoring/inference",
		Features:        []string{"f1"},
		Metric:          "psi",
		Threshold:       0.05,
	})
	require.NoError(t, err)
	require.NotNil(t, signal)
	assert.Equal(t, "azureml:train_ds", signal.BaselineData)
}

func TestBuildDriftSignalPropagatesUpsertError(t *testing.T) {
	upsertErr := errors.New("remote rejected signal")
	reg := &recordingSignals{err: upsertErr}

	signal, err := BuildDriftSignal(context.Background(), reg, DriftSignalParams{
		Name:            "sig",
		BaselineDataset: "base",
		DatastoreName:   "store",
		Path:            "p",
	})
	assert.ErrorIs(t, err, upsertErr)
	assert.Nil(t, signal)
	assert.Empty(t, reg.created)
}

func TestBuildMonitorScheduleCallsRegistrar(t *testing.T) {
	reg := &recordingSchedules{}

	sched, err := BuildMonitorSchedule(context.Background(), reg, MonitorScheduleParams{
		Name:        "test-schedule",
		SignalName:  "test-signal",
		Frequency:   schema.DayFrequency,
		Description: "desc",
	})
	require.NoError(t, err)

	assert.Equal(t, "test-schedule", sched.Name)
	assert.Equal(t, []string{"test-signal"}, sched.Signals)
	assert.Equal(t, "Day", sched.Frequency)
	assert.Equal(t, "desc", sched.Description)

	require.Len(t, reg.created, 1)
	assert.Equal(t, *sched, reg.created[0])
}

func TestBuildMonitorScheduleAlwaysWrapsOneSignal(t *testing.T) {
	sched, err := BuildMonitorSchedule(context.Background(), nil, MonitorScheduleParams{
		Name:       "s",
		SignalName: "only-signal",
		Frequency:  schema.WeekFrequency,
	})
	require.NoError(t, err)
	require.Len(t, sched.Signals, 1)
	assert.Equal(t, "only-signal", sched.Signals[0])
	assert.Empty(t, sched.Description)
}

func TestBuildMonitorSchedulePropagatesUpsertError(t *testing.T) {
	upsertErr := errors.New("remote rejected schedule")
	sched, err := BuildMonitorSchedule(context.Background(), &recordingSchedules{err: upsertErr}, MonitorScheduleParams{
		Name:       "s",
		SignalName: "sig",
		Frequency:  schema.DayFrequency,
	})
	assert.ErrorIs(t, err, upsertErr)
	assert.Nil(t, sched)
}
