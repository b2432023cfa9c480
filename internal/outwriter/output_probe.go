package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

// maxProbeBodyChars bounds the response-body excerpt in text output; full
// bodies go to the JSON results file.
const maxProbeBodyChars = 120

// WriteProbeResults outputs the api-version probe results, dispatching based
// on the output format configured.
func WriteProbeResults(results []schema.ProbeResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProbeCSV(w, results)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProbeText(w, results, cfg)
		}, "Wrote probe report")
	}
}

// writeProbeCSV writes one row per probed version/endpoint pair.
func writeProbeCSV(w io.Writer, results []schema.ProbeResult) error {
	if _, err := fmt.Fprintln(w, "api_version,endpoint,status_code,url"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s,%s,%d,%s\n", r.APIVersion, r.Endpoint, r.StatusCode, r.URL); err != nil {
			return err
		}
	}
	return nil
}

// writeProbeText prints one line per probe with a colored status marker and
// a truncated body excerpt for non-2xx responses.
func writeProbeText(w io.Writer, results []schema.ProbeResult, cfg *contract.Config) error {
	okCount := 0
	for _, r := range results {
		marker := statusMarker(r.StatusCode, cfg.UseColors)
		if r.StatusCode >= 200 && r.StatusCode < 300 {
			okCount++
		}
		if _, err := fmt.Fprintf(w, "%s %-22s %-16s %d\n", marker, r.APIVersion, r.Endpoint, r.StatusCode); err != nil {
			return err
		}
		if r.StatusCode >= 300 && r.Body != "" {
			if _, err := fmt.Fprintf(w, "    %s\n", truncateBody(r.Body)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d of %d probes succeeded\n", okCount, len(results))
	return err
}

// statusMarker maps an HTTP status code to the shared state labels so probe
// output colors match the rest of the CLI.
func statusMarker(code int, useColors bool) string {
	state := "failed"
	if code >= 200 && code < 300 {
		state = "succeeded"
	}
	if useColors {
		return contract.GetColorStateLabel(state)
	}
	return contract.GetPlainStateLabel(state)
}

// truncateBody collapses whitespace and bounds the excerpt length.
func truncateBody(body string) string {
	collapsed := strings.Join(strings.Fields(body), " ")
	if len(collapsed) <= maxProbeBodyChars {
		return collapsed
	}
	return collapsed[:maxProbeBodyChars] + "..."
}
