package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

// WriteRunResults outputs the recorded runs, dispatching based on the output
// format configured.
func WriteRunResults(records []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunCSV(w, records)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(w, records, cfg)
		}, "Wrote table")
	}
}

// writeRunCSV writes one row per recorded run, payload excluded.
func writeRunCSV(w io.Writer, records []schema.RunRecord) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"id", "command", "kind", "name", "version", "state", "created"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		rec := []string{
			strconv.FormatInt(r.ID, 10),
			r.Command,
			r.ResourceKind,
			r.ResourceName,
			r.ResourceVersion,
			contract.GetPlainStateLabel(r.ProvisioningState),
			r.CreatedAt.Format(contract.DateTimeFormat),
		}
		if err := csvWriter.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", r.ID, err)
		}
	}
	return nil
}

// writeRunTable generates and writes the human-readable table.
func writeRunTable(w io.Writer, records []schema.RunRecord, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Command", "Kind", "Name", "Version", "State", "Created"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	nameWidth := getMaxNameWidth()
	stateLabel := contract.GetPlainStateLabel
	if cfg.UseColors {
		stateLabel = contract.GetColorStateLabel
	}

	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			strconv.FormatInt(r.ID, 10),
			r.Command,
			r.ResourceKind,
			truncateName(r.ResourceName, nameWidth),
			r.ResourceVersion,
			stateLabel(r.ProvisioningState),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d recorded runs\n", len(records))
	return err
}

// WriteRunStatus prints the run-store summary the way the status command
// expects it.
func WriteRunStatus(status *contract.RunStoreStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Run store backend: %s\n", status.Backend); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Total records: %d\n", status.TotalRecords); err != nil {
			return err
		}
		if status.TotalRecords > 0 {
			if _, err := fmt.Fprintf(w, "Oldest record: %s\n", status.OldestRecord); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Newest record: %s\n", status.NewestRecord); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote status")
}
