// Package schema has the shared data model, configs and enums for all parts of driftmon.
package schema

import "time"

// DriftSignal is the flat drift-signal descriptor built by the monitor builders.
// BaselineData references a registered training dataset ("azureml:<name>") and
// TargetData references a datastore path holding inference batches
// ("azureml://datastores/<store>/paths/<path>/").
type DriftSignal struct {
	Name         string   `json:"name"`
	BaselineData string   `json:"baselineData"`
	TargetData   string   `json:"targetData"`
	Features     []string `json:"features"`
	Metric       string   `json:"metric"`
	Threshold    float64  `json:"threshold"`
}

// MonitorSchedule is the flat schedule descriptor built by the monitor builders.
// Signals always holds exactly one signal name; multi-signal schedules are out
// of scope. Description is optional and omitted when empty.
type MonitorSchedule struct {
	Name        string   `json:"name"`
	Signals     []string `json:"signals"`
	Frequency   string   `json:"frequency"`
	Description string   `json:"description,omitempty"`
}

// DataAsset describes a dataset registered with the workspace.
type DataAsset struct {
	Name        string    `json:"name"`
	Version     string    `json:"version,omitempty"`
	Path        string    `json:"path"`
	Type        AssetType `json:"type"`
	Description string    `json:"description,omitempty"`
}

// ModelAsset describes a model registered with the workspace.
type ModelAsset struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// SparkCompute is the serverless compute used by monitoring jobs.
type SparkCompute struct {
	InstanceType   string `json:"instanceType"`
	RuntimeVersion string `json:"runtimeVersion"`
}

// MonitoringTarget names the ML task of the monitored model. The endpoint
// deployment id stays empty when no managed endpoint is involved.
type MonitoringTarget struct {
	MLTask               string `json:"mlTask"`
	EndpointDeploymentID string `json:"endpointDeploymentId,omitempty"`
}

// MonitorInput points a monitor at a registered data asset.
type MonitorInput struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// ReferenceData is the baseline side of an advanced drift signal.
type ReferenceData struct {
	Input       MonitorInput      `json:"inputData"`
	ColumnNames map[string]string `json:"dataColumnNames,omitempty"`
}

// DataWindow bounds the production data by ISO-8601 duration offsets.
type DataWindow struct {
	LookbackOffset string `json:"lookbackWindowOffset"`
	LookbackSize   string `json:"lookbackWindowSize"`
}

// ProductionData is the production side of an advanced drift signal.
type ProductionData struct {
	Input  MonitorInput `json:"inputData"`
	Window DataWindow   `json:"dataWindow"`
}

// MetricThresholds carries the numerical/categorical threshold overrides for
// an advanced drift signal. Nil members mean platform defaults.
type MetricThresholds struct {
	Numerical   *float64 `json:"numerical,omitempty"`
	Categorical *float64 `json:"categorical,omitempty"`
}

// AdvancedDriftSignal is the fully specified data-drift signal used by the
// deploy path, mirroring what the platform's monitor definition expects.
type AdvancedDriftSignal struct {
	Reference    ReferenceData    `json:"referenceData"`
	Production   ProductionData   `json:"productionData"`
	Features     []string         `json:"features"`
	Thresholds   MetricThresholds `json:"metricThresholds"`
	AlertEnabled bool             `json:"alertEnabled"`
}

// AlertNotification lists the e-mail recipients for monitor alerts.
type AlertNotification struct {
	Emails []string `json:"emails"`
}

// MonitorDefinition is the complete monitor body attached to a schedule.
type MonitorDefinition struct {
	Compute      SparkCompute                   `json:"computeConfiguration"`
	Target       MonitoringTarget               `json:"monitoringTarget"`
	Signals      map[string]AdvancedDriftSignal `json:"monitoringSignals"`
	Notification AlertNotification              `json:"alertNotificationSettings"`
}

// RecurrencePattern pins the recurrence to a time of day.
type RecurrencePattern struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// RecurrenceTrigger fires the schedule every Interval units of Frequency.
type RecurrenceTrigger struct {
	Frequency string            `json:"frequency"`
	Interval  int               `json:"interval"`
	Pattern   RecurrencePattern `json:"schedule"`
}

// MonitorScheduleResource is the full schedule resource submitted on deploy.
type MonitorScheduleResource struct {
	Name       string            `json:"name"`
	Trigger    RecurrenceTrigger `json:"trigger"`
	Definition MonitorDefinition `json:"createMonitorDefinition"`
}

// ScheduleSummary is what the workspace reports back for a listed schedule.
type ScheduleSummary struct {
	Name              string    `json:"name"`
	DisplayName       string    `json:"displayName,omitempty"`
	ProvisioningState string    `json:"provisioningState"`
	Enabled           bool      `json:"isEnabled"`
	IsMonitor         bool      `json:"isMonitor"`
	SignalNames       []string  `json:"signalNames,omitempty"`
	TriggerFrequency  string    `json:"triggerFrequency,omitempty"`
	TriggerInterval   int       `json:"triggerInterval,omitempty"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
}

// ProbeResult records one endpoint probe under one api-version.
type ProbeResult struct {
	APIVersion string `json:"apiVersion"`
	Endpoint   string `json:"endpoint"`
	StatusCode int    `json:"statusCode"`
	URL        string `json:"url"`
	Body       string `json:"body"`
}

// RunRecord is one created-resource entry in the local run store.
type RunRecord struct {
	ID                int64     `json:"id"`
	Command           string    `json:"command"`
	ResourceKind      string    `json:"resourceKind"`
	ResourceName      string    `json:"resourceName"`
	ResourceVersion   string    `json:"resourceVersion"`
	ProvisioningState string    `json:"provisioningState"`
	Payload           string    `json:"payload"`
	CreatedAt         time.Time `json:"createdAt"`
}
