package contract

import (
	"testing"
	"time"

	"github.com/mlopshq/driftmon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalInput returns a raw input carrying just the required coordinates.
func minimalInput() *ConfigRawInput {
	return &ConfigRawInput{
		SubscriptionID: "sub-1",
		ResourceGroup:  "rg-1",
		Workspace:      "ws-1",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(_ *ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "missing subscription id",
			mutate:      func(in *ConfigRawInput) { in.SubscriptionID = "" },
			expectError: true,
		},
		{
			name:        "missing resource group",
			mutate:      func(in *ConfigRawInput) { in.ResourceGroup = "" },
			expectError: true,
		},
		{
			name:        "missing workspace",
			mutate:      func(in *ConfigRawInput) { in.Workspace = "" },
			expectError: true,
		},
		{
			name:        "invalid timeout",
			mutate:      func(in *ConfigRawInput) { in.Timeout = "banana" },
			expectError: true,
		},
		{
			name:        "negative timeout",
			mutate:      func(in *ConfigRawInput) { in.Timeout = "-5s" },
			expectError: true,
		},
		{
			name:        "invalid output mode",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "invalid frequency",
			mutate:      func(in *ConfigRawInput) { in.Frequency = "Fortnight" },
			expectError: true,
		},
		{
			name:        "invalid run backend",
			mutate:      func(in *ConfigRawInput) { in.RunBackend = "oracle" },
			expectError: true,
		},
		{
			name: "mysql backend without connection string",
			mutate: func(in *ConfigRawInput) {
				in.RunBackend = string(schema.MySQLBackend)
			},
			expectError: true,
		},
		{
			name: "mysql backend with valid connection string",
			mutate: func(in *ConfigRawInput) {
				in.RunBackend = string(schema.MySQLBackend)
				in.RunDBConnect = "user:pass@tcp(localhost:3306)/driftmon"
			},
			expectError: false,
		},
		{
			name: "postgresql backend with url connection string",
			mutate: func(in *ConfigRawInput) {
				in.RunBackend = string(schema.PostgreSQLBackend)
				in.RunDBConnect = "postgres://user@localhost/driftmon"
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := minimalInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, minimalInput()))

	assert.Equal(t, "sub-1", cfg.SubscriptionID)
	assert.Equal(t, DefaultDatastore, cfg.Datastore)
	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultPrecision, cfg.Precision)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.DefaultMetric, cfg.Metric)
	assert.Equal(t, schema.DayFrequency, cfg.Frequency)
	assert.Equal(t, schema.SQLiteBackend, cfg.RunBackend)
	assert.Equal(t, DefaultSampleCount, cfg.SampleCount)
	assert.Equal(t, DefaultFeatures, cfg.FeatureCount)
	assert.Equal(t, "driftmon_http_debug.log", cfg.DebugHTTPLog)
}

func TestProcessAndValidateOverrides(t *testing.T) {
	input := minimalInput()
	input.Timeout = "90s"
	input.Output = "JSON"
	input.Precision = 7
	input.Color = "no"
	input.Features = "feature_0, feature_2 ,,feature_4"
	input.Frequency = string(schema.WeekFrequency)
	input.Samples = 500
	input.AccessToken = "tok-123"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, 2, cfg.Precision) // clamped
	assert.False(t, cfg.UseColors)
	assert.Equal(t, []string{"feature_0", "feature_2", "feature_4"}, cfg.Features)
	assert.Equal(t, schema.WeekFrequency, cfg.Frequency)
	assert.Equal(t, 500, cfg.SampleCount)
	assert.Equal(t, "tok-123", cfg.AccessToken)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite ignores connection string", schema.SQLiteBackend, "", false},
		{"none ignores connection string", schema.NoneBackend, "", false},
		{"mysql missing tcp host", schema.MySQLBackend, "user:pass/driftmon", true},
		{"mysql missing database", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/driftmon", false},
		{"postgres key value form", schema.PostgreSQLBackend, "host=localhost user=postgres", false},
		{"postgres url form", schema.PostgreSQLBackend, "postgres://user@localhost/db", false},
		{"postgres invalid form", schema.PostgreSQLBackend, "localhost:5432", true},
		{"unknown backend", schema.DatabaseBackend("oracle"), "whatever", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseBoolish(t *testing.T) {
	assert.True(t, ParseBoolish("yes", false))
	assert.True(t, ParseBoolish("TRUE", false))
	assert.True(t, ParseBoolish("1", false))
	assert.False(t, ParseBoolish("no", true))
	assert.False(t, ParseBoolish("off", true))
	assert.True(t, ParseBoolish("", true))
	assert.False(t, ParseBoolish("gibberish", false))
}
