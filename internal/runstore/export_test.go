package runstore

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlopshq/driftmon/schema"
)

func TestConvertRunRecords(t *testing.T) {
	records := []schema.RunRecord{
		{
			ID:                1,
			Command:           "train",
			ResourceKind:      "data",
			ResourceName:      "train_ds",
			ResourceVersion:   "1",
			ProvisioningState: "Succeeded",
			Payload:           `{"name": "train_ds"}`,
			CreatedAt:         time.Now().UTC(),
		},
		{
			ID:                2,
			Command:           "monitor create",
			ResourceKind:      "signal",
			ResourceName:      "drift-signal",
			ProvisioningState: "Succeeded",
		},
	}

	rows := ConvertRunRecords(records)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].ResourceVersion)
	assert.Equal(t, "1", *rows[0].ResourceVersion)
	require.NotNil(t, rows[0].Payload)
	assert.Nil(t, rows[1].ResourceVersion)
	assert.Nil(t, rows[1].Payload)
}

func TestWriteRunsParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	version := "1"
	rows := []RunRow{
		{ID: 1, Command: "train", ResourceKind: "data", ResourceName: "train_ds", ResourceVersion: &version, ProvisioningState: "Succeeded", CreatedAt: time.Now().UTC()},
		{ID: 2, Command: "monitor create", ResourceKind: "signal", ResourceName: "drift-signal", ProvisioningState: "Succeeded", CreatedAt: time.Now().UTC()},
	}

	require.NoError(t, WriteRunsParquet(rows, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[RunRow](file)
	defer func() { _ = reader.Close() }()

	got := make([]RunRow, 2)
	n, err := reader.Read(got)
	if err != nil && err != io.EOF {
		t.Fatalf("failed to read parquet rows: %v", err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, "train_ds", got[0].ResourceName)
	assert.Equal(t, "drift-signal", got[1].ResourceName)
}

func TestExecuteRunExport(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.RecordRun(sampleRecord("exported")))

	path := filepath.Join(t.TempDir(), "out.parquet")
	require.NoError(t, ExecuteRunExport(store, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExecuteRunExportRequiresOutputFile(t *testing.T) {
	store := newSQLiteStore(t)
	err := ExecuteRunExport(store, "")
	assert.ErrorContains(t, err, "--output-file")
}

func TestExecuteRunExportEmptyStore(t *testing.T) {
	store := newSQLiteStore(t)
	err := ExecuteRunExport(store, filepath.Join(t.TempDir(), "out.parquet"))
	assert.ErrorContains(t, err, "no run records")
}
