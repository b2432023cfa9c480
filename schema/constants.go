package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// AssetType represents a data asset flavor understood by the workspace.
	AssetType string

	// Frequency represents a schedule cadence token.
	Frequency string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All asset types supported.
const (
	URIFileAsset AssetType = "uri_file"
	MLTableAsset AssetType = "mltable"
)

// Schedule cadence tokens accepted by the platform.
const (
	DayFrequency   Frequency = "Day"
	WeekFrequency  Frequency = "Week"
	MonthFrequency Frequency = "Month"
)

// All run-store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ReferenceScheme prefixes registered asset references ("azureml:<name>").
const ReferenceScheme = "azureml"

// DefaultMetric is the drift metric used when none is configured.
const DefaultMetric = "population_stability_index"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidFrequencies lists all valid schedule cadence tokens.
var ValidFrequencies = map[Frequency]struct{}{
	DayFrequency:   {},
	WeekFrequency:  {},
	MonthFrequency: {},
}

// ValidDatabaseBackends lists all valid run-store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ProbeAPIVersions is the list of management api-versions probed by the
// monitor probe command, newest first.
var ProbeAPIVersions = []string{
	"2025-10-01-preview",
	"2025-04-01-preview",
	"2024-08-01-preview",
	"2024-06-01-preview",
	"2024-01-01-preview",
	"2023-10-01",
	"2023-10-01-preview",
}

// ProbeEndpoints is the list of workspace child endpoints probed per version.
var ProbeEndpoints = []string{"monitorSchedules", "monitorSignals"}
