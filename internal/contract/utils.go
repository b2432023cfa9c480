package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Provisioning state labels reported by the workspace.
const (
	SucceededValue = "Succeeded"
	FailedValue    = "Failed"
	CreatingValue  = "Creating"
	UnknownValue   = "Unknown"
)

// Color variables for console output.
var (
	SucceededColor = color.New(color.FgGreen, color.Bold) // healthy resource
	FailedColor    = color.New(color.FgRed, color.Bold)   // needs attention
	CreatingColor  = color.New(color.FgYellow)            // still converging
	UnknownColor   = color.New(color.FgCyan)              // informational
)

// GetPlainStateLabel normalizes a provisioning state string into one of the
// known labels. This is the core logic used for CSV, JSON, and table printing.
func GetPlainStateLabel(state string) string {
	switch strings.ToLower(state) {
	case "succeeded", "completed":
		return SucceededValue
	case "failed", "canceled":
		return FailedValue
	case "creating", "updating", "provisioning":
		return CreatingValue
	default:
		return UnknownValue
	}
}

// GetColorStateLabel returns a colored provisioning-state label for console
// output. It uses GetPlainStateLabel to determine the string, and then applies
// the appropriate color.
func GetColorStateLabel(state string) string {
	text := GetPlainStateLabel(state)

	switch text {
	case SucceededValue:
		return SucceededColor.Sprint(text)
	case FailedValue:
		return FailedColor.Sprint(text)
	case CreatingValue:
		return CreatingColor.Sprint(text)
	default: // "Unknown"
		return UnknownColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".driftmon_runs.db"
	}
	return filepath.Join(homeDir, ".driftmon_runs.db")
}
