package outwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

func sampleSchedules() []schema.ScheduleSummary {
	return []schema.ScheduleSummary{
		{
			Name:              "drift-schedule",
			ProvisioningState: "Succeeded",
			Enabled:           true,
			IsMonitor:         true,
			SignalNames:       []string{"drift-signal"},
			TriggerFrequency:  "Day",
			TriggerInterval:   1,
			CreatedAt:         time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			Name:              "nightly-batch",
			ProvisioningState: "Creating",
			Enabled:           false,
		},
	}
}

func fileConfig(t *testing.T, output schema.OutputMode) (*contract.Config, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out")
	return &contract.Config{Output: output, OutputFile: path, UseColors: false}, path
}

func TestWriteScheduleResultsTable(t *testing.T) {
	cfg, path := fileConfig(t, schema.TextOut)

	require.NoError(t, WriteScheduleResults(sampleSchedules(), cfg, 20*time.Millisecond))

	out := readFile(t, path)
	assert.Contains(t, out, "drift-schedule")
	assert.Contains(t, out, "Monitor")
	assert.Contains(t, out, "General")
	assert.Contains(t, out, "Succeeded")
	assert.Contains(t, out, "Day/1")
	assert.Contains(t, out, "Showing 2 schedules (1 monitors)")
}

func TestWriteScheduleResultsCSV(t *testing.T) {
	cfg, path := fileConfig(t, schema.CSVOut)

	require.NoError(t, WriteScheduleResults(sampleSchedules(), cfg, time.Millisecond))

	lines := strings.Split(strings.TrimSpace(readFile(t, path)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,kind,state,enabled,signals,cadence,created", lines[0])
	assert.Equal(t, "drift-schedule,Monitor,Succeeded,true,drift-signal,Day/1,2026-08-01", lines[1])
	assert.Equal(t, "nightly-batch,General,Creating,false,,-,-", lines[2])
}

func TestWriteScheduleResultsJSON(t *testing.T) {
	cfg, path := fileConfig(t, schema.JSONOut)

	require.NoError(t, WriteScheduleResults(sampleSchedules(), cfg, time.Millisecond))

	out := readFile(t, path)
	assert.Contains(t, out, `"name": "drift-schedule"`)
	assert.Contains(t, out, `"isMonitor": true`)
}

func TestWriteProbeResultsText(t *testing.T) {
	cfg, path := fileConfig(t, schema.TextOut)
	results := []schema.ProbeResult{
		{APIVersion: "2023-10-01", Endpoint: "monitorSchedules", StatusCode: 200},
		{APIVersion: "2023-10-01", Endpoint: "monitorSignals", StatusCode: 404, Body: `{"error": "not found"}`},
	}

	require.NoError(t, WriteProbeResults(results, cfg))

	out := readFile(t, path)
	assert.Contains(t, out, "monitorSchedules")
	assert.Contains(t, out, "404")
	assert.Contains(t, out, `{"error": "not found"}`)
	assert.Contains(t, out, "1 of 2 probes succeeded")
}

func TestWriteRunResultsCSV(t *testing.T) {
	cfg, path := fileConfig(t, schema.CSVOut)
	records := []schema.RunRecord{{
		ID:                7,
		Command:           "monitor create",
		ResourceKind:      "signal",
		ResourceName:      "drift-signal",
		ResourceVersion:   "1",
		ProvisioningState: "succeeded",
		CreatedAt:         time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC),
	}}

	require.NoError(t, WriteRunResults(records, cfg))

	out := readFile(t, path)
	assert.Contains(t, out, "7,monitor create,signal,drift-signal,1,Succeeded,")
}

func TestWriteRunStatus(t *testing.T) {
	cfg, path := fileConfig(t, schema.TextOut)
	status := &contract.RunStoreStatus{
		Backend:      schema.SQLiteBackend,
		TotalRecords: 3,
		OldestRecord: "2026-08-01T06:00:00Z",
		NewestRecord: "2026-08-20T06:00:00Z",
	}

	require.NoError(t, WriteRunStatus(status, cfg))

	out := readFile(t, path)
	assert.Contains(t, out, "Run store backend: sqlite")
	assert.Contains(t, out, "Total records: 3")
	assert.Contains(t, out, "Oldest record: 2026-08-01T06:00:00Z")
}

func TestWriteRunStatusEmptyStoreSkipsBounds(t *testing.T) {
	cfg, path := fileConfig(t, schema.TextOut)

	require.NoError(t, WriteRunStatus(&contract.RunStoreStatus{Backend: schema.NoneBackend}, cfg))

	out := readFile(t, path)
	assert.NotContains(t, out, "Oldest record")
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short", 10))
	assert.Equal(t, "...ng-schedule-name", truncateName("very-long-schedule-name", 19))
	assert.Len(t, truncateName("very-long-schedule-name", 15), 15)
}

func TestFormatCadence(t *testing.T) {
	assert.Equal(t, "-", formatCadence(schema.ScheduleSummary{}))
	assert.Equal(t, "Week/2", formatCadence(schema.ScheduleSummary{TriggerFrequency: "Week", TriggerInterval: 2}))
	assert.Equal(t, "Day/1", formatCadence(schema.ScheduleSummary{TriggerFrequency: "Day"}))
}

func TestTruncateBody(t *testing.T) {
	assert.Equal(t, "a b", truncateBody("a\n  b"))
	long := strings.Repeat("x", 200)
	got := truncateBody(long)
	assert.Len(t, got, maxProbeBodyChars+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
