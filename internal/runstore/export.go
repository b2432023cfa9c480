package runstore

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

// RunRow is the Parquet row shape for exported run records. The schema is
// derived from the struct tags by the generic writer.
type RunRow struct {
	// ID is the unique identifier of the run record
	ID int64 `parquet:"id,snappy"`

	// Command is the driftmon command that created the resource
	Command string `parquet:"command,snappy"`

	// ResourceKind names what was created (data, model, signal, schedule)
	ResourceKind string `parquet:"resource_kind,snappy"`

	// ResourceName is the workspace name of the created resource
	ResourceName string `parquet:"resource_name,snappy"`

	// ResourceVersion is the asset version, when the resource has one
	ResourceVersion *string `parquet:"resource_version,optional,snappy"`

	// ProvisioningState is the state the workspace reported
	ProvisioningState string `parquet:"provisioning_state,snappy"`

	// Payload is the JSON body of the created resource
	Payload *string `parquet:"payload,optional,snappy"`

	// CreatedAt is when the record was written
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// ConvertRunRecords maps store records to Parquet rows.
func ConvertRunRecords(records []schema.RunRecord) []RunRow {
	rows := make([]RunRow, 0, len(records))
	for _, rec := range records {
		row := RunRow{
			ID:                rec.ID,
			Command:           rec.Command,
			ResourceKind:      rec.ResourceKind,
			ResourceName:      rec.ResourceName,
			ProvisioningState: rec.ProvisioningState,
			CreatedAt:         rec.CreatedAt,
		}
		if rec.ResourceVersion != "" {
			version := rec.ResourceVersion
			row.ResourceVersion = &version
		}
		if rec.Payload != "" {
			payload := rec.Payload
			row.Payload = &payload
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteRunsParquet writes the rows to a Parquet file.
func WriteRunsParquet(rows []RunRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[RunRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ExecuteRunExport exports all recorded runs to a Parquet file.
func ExecuteRunExport(store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run store status: %w", err)
	}
	if status.TotalRecords == 0 {
		return errors.New("no run records found to export")
	}

	records, err := store.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve run records: %w", err)
	}

	rows := ConvertRunRecords(records)
	if err := WriteRunsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write run records: %w", err)
	}
	fmt.Printf("Exported %d run records from %s backend to: %s\n", len(rows), status.Backend, outputFile)
	return nil
}
