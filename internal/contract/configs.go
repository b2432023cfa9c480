package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/mlopshq/driftmon/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 1
	DefaultTimeout     = 60 * time.Second
	DefaultAPIVersion  = "2023-10-01"
	DefaultDatastore   = "workspaceblobstore"
	DefaultSampleCount = 2000
	DefaultFeatures    = 5
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the validated, final runtime configuration.
type Config struct {
	SubscriptionID string
	ResourceGroup  string
	Workspace      string
	Datastore      string
	AlertEmail     string

	AccessToken string // Please use env var as this is plaintext
	APIVersion  string
	Timeout     time.Duration

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool

	DebugHTTP    bool
	DebugHTTPLog string

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	// Monitor parameters resolved from flags/config; the core builders never
	// read these globals, they receive plain arguments.
	SignalName      string
	ScheduleName    string
	BaselineDataset string
	InferencePath   string
	Features        []string
	Metric          string
	Threshold       float64
	Frequency       schema.Frequency
	Description     string

	SampleCount  int
	FeatureCount int
	Seed         int64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	SubscriptionID string `mapstructure:"subscription-id"`
	ResourceGroup  string `mapstructure:"resource-group"`
	Workspace      string `mapstructure:"workspace"`
	Datastore      string `mapstructure:"datastore"`
	AlertEmail     string `mapstructure:"alert-email"`

	AccessToken string `mapstructure:"access-token"`
	APIVersion  string `mapstructure:"api-version"`
	Timeout     string `mapstructure:"timeout"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Color      string `mapstructure:"color"`

	DebugHTTP    bool   `mapstructure:"debug-http"`
	DebugHTTPLog string `mapstructure:"debug-http-log"`

	RunBackend   string `mapstructure:"run-backend"`
	RunDBConnect string `mapstructure:"run-db-connect"`

	// --- Fields from monitor flags ---
	SignalName      string  `mapstructure:"signal-name"`
	ScheduleName    string  `mapstructure:"schedule-name"`
	BaselineDataset string  `mapstructure:"baseline-dataset"`
	InferencePath   string  `mapstructure:"inference-path"`
	Features        string  `mapstructure:"features"`
	Metric          string  `mapstructure:"metric"`
	Threshold       float64 `mapstructure:"threshold"`
	Frequency       string  `mapstructure:"frequency"`
	Description     string  `mapstructure:"description"`

	// --- Fields from train/inference flags ---
	Samples      int   `mapstructure:"samples"`
	FeatureCount int   `mapstructure:"feature-count"`
	Seed         int64 `mapstructure:"seed"`
}

// ProcessAndValidate reads from 'input' and populates 'cfg', rejecting
// anything the workspace client or run store cannot work with.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processWorkspaceInputs(cfg, input); err != nil {
		return err
	}
	if err := processOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := processMonitorInputs(cfg, input); err != nil {
		return err
	}
	if err := processRunStoreInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// processWorkspaceInputs validates the workspace coordinates and client knobs.
func processWorkspaceInputs(cfg *Config, input *ConfigRawInput) error {
	if input.SubscriptionID == "" || input.ResourceGroup == "" || input.Workspace == "" {
		return fmt.Errorf("subscription-id, resource-group and workspace are required (set DRIFTMON_SUBSCRIPTION_ID, DRIFTMON_RESOURCE_GROUP and DRIFTMON_WORKSPACE)")
	}
	cfg.SubscriptionID = input.SubscriptionID
	cfg.ResourceGroup = input.ResourceGroup
	cfg.Workspace = input.Workspace

	cfg.Datastore = input.Datastore
	if cfg.Datastore == "" {
		cfg.Datastore = DefaultDatastore
	}
	cfg.AlertEmail = input.AlertEmail
	cfg.AccessToken = input.AccessToken

	cfg.APIVersion = input.APIVersion
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	cfg.Timeout = DefaultTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		cfg.Timeout = d
	}

	cfg.DebugHTTP = input.DebugHTTP
	cfg.DebugHTTPLog = input.DebugHTTPLog
	if cfg.DebugHTTPLog == "" {
		cfg.DebugHTTPLog = "driftmon_http_debug.log"
	}
	return nil
}

// processOutputInputs validates the output format, precision and color knobs.
func processOutputInputs(cfg *Config, input *ConfigRawInput) error {
	mode := schema.OutputMode(strings.ToLower(input.Output))
	if mode == "" {
		mode = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[mode]; !ok {
		return fmt.Errorf("invalid output mode %q: must be text, csv, json or parquet", input.Output)
	}
	cfg.Output = mode
	cfg.OutputFile = input.OutputFile

	cfg.Precision = input.Precision
	if cfg.Precision < 1 {
		cfg.Precision = 1
	}
	if cfg.Precision > 2 {
		cfg.Precision = 2
	}

	cfg.UseColors = ParseBoolish(input.Color, true)
	return nil
}

// processMonitorInputs validates the drift-signal and schedule parameters.
func processMonitorInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.SignalName = input.SignalName
	cfg.ScheduleName = input.ScheduleName
	cfg.BaselineDataset = input.BaselineDataset
	cfg.InferencePath = input.InferencePath
	cfg.Description = input.Description

	cfg.Features = splitCommaList(input.Features)

	cfg.Metric = input.Metric
	if cfg.Metric == "" {
		cfg.Metric = schema.DefaultMetric
	}
	cfg.Threshold = input.Threshold

	freq := schema.Frequency(input.Frequency)
	if freq == "" {
		freq = schema.DayFrequency
	}
	if _, ok := schema.ValidFrequencies[freq]; !ok {
		return fmt.Errorf("invalid frequency %q: must be Day, Week or Month", input.Frequency)
	}
	cfg.Frequency = freq

	cfg.SampleCount = input.Samples
	if cfg.SampleCount <= 0 {
		cfg.SampleCount = DefaultSampleCount
	}
	cfg.FeatureCount = input.FeatureCount
	if cfg.FeatureCount <= 0 {
		cfg.FeatureCount = DefaultFeatures
	}
	cfg.Seed = input.Seed
	return nil
}

// processRunStoreInputs validates the run-store backend selection.
func processRunStoreInputs(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(input.RunBackend)
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("unsupported run-store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.RunDBConnect); err != nil {
		return err
	}
	cfg.RunBackend = backend
	cfg.RunDBConnect = input.RunDBConnect
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
		return nil
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must use key=value form or a postgres:// URL")
		}
		return nil
	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}
}

// splitCommaList splits a comma-separated flag value, trimming blanks.
func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseBoolish interprets yes/no/true/false/1/0 the way the CLI flags do.
func ParseBoolish(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
