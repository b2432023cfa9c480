package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

// WriteScheduleResults outputs the listed schedules, dispatching based on the
// output format configured.
func WriteScheduleResults(schedules []schema.ScheduleSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schedules)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScheduleCSV(w, schedules)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScheduleTable(w, schedules, cfg, duration)
		}, "Wrote table")
	}
}

// writeScheduleCSV writes one row per schedule with plain state labels.
func writeScheduleCSV(w io.Writer, schedules []schema.ScheduleSummary) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"name", "kind", "state", "enabled", "signals", "cadence", "created"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, s := range schedules {
		rec := []string{
			s.Name,
			scheduleKind(s),
			contract.GetPlainStateLabel(s.ProvisioningState),
			strconv.FormatBool(s.Enabled),
			strings.Join(s.SignalNames, ";"),
			formatCadence(s),
			formatCreatedAt(s.CreatedAt),
		}
		if err := csvWriter.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", s.Name, err)
		}
	}
	return nil
}

// writeScheduleTable generates and writes the human-readable table.
func writeScheduleTable(w io.Writer, schedules []schema.ScheduleSummary, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Kind", "State", "Enabled", "Signals", "Cadence", "Created"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	nameWidth := getMaxNameWidth()
	stateLabel := contract.GetPlainStateLabel
	if cfg.UseColors {
		stateLabel = contract.GetColorStateLabel
	}

	monitors := 0
	var data [][]string
	for _, s := range schedules {
		if s.IsMonitor {
			monitors++
		}
		data = append(data, []string{
			truncateName(s.Name, nameWidth),
			scheduleKind(s),
			stateLabel(s.ProvisioningState),
			strconv.FormatBool(s.Enabled),
			strings.Join(s.SignalNames, ", "),
			formatCadence(s),
			formatCreatedAt(s.CreatedAt),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d schedules (%d monitors)\n", len(schedules), monitors); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Listed in %v\n", duration.Round(time.Millisecond))
	return err
}

// scheduleKind distinguishes drift monitors from general job schedules.
func scheduleKind(s schema.ScheduleSummary) string {
	if s.IsMonitor {
		return "Monitor"
	}
	return "General"
}

// formatCadence renders the recurrence as "<frequency>/<interval>".
func formatCadence(s schema.ScheduleSummary) string {
	if s.TriggerFrequency == "" {
		return "-"
	}
	interval := s.TriggerInterval
	if interval <= 0 {
		interval = 1
	}
	return fmt.Sprintf("%s/%d", s.TriggerFrequency, interval)
}

// formatCreatedAt renders the creation time, or "-" when the workspace did
// not report one.
func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
