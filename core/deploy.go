package core

import (
	"context"
	"fmt"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

// Monitoring job defaults matching what the workspace provisions for
// serverless drift monitors.
const (
	sparkInstanceType  = "standard_e4s_v3"
	sparkRuntime       = "3.4"
	monitorMLTask      = "classification"
	targetLabelColumn  = "label"
	lookbackOffset     = "P0D"
	lookbackSize       = "P7D"
	fallbackAlertEmail = "noreply@example.com"
	triggerHour        = 6
	triggerMinute      = 0
)

// MonitorResourceParams are the inputs to BuildMonitorResource.
type MonitorResourceParams struct {
	ScheduleName     string
	SignalName       string
	ReferenceDataset string // registered mltable asset holding the training data
	ProductionDs     string // registered mltable asset holding inference batches
	Features         []string
	Threshold        float64
	Frequency        schema.Frequency
	AlertEmail       string
}

// BuildMonitorResource assembles the full monitor schedule resource for the
// deploy path: a serverless Spark monitor with one data-drift signal over
// registered mltable assets, recurring daily at 06:00 unless the frequency
// says otherwise.
func BuildMonitorResource(p MonitorResourceParams) *schema.MonitorScheduleResource {
	alertEmail := p.AlertEmail
	if alertEmail == "" {
		alertEmail = fallbackAlertEmail
	}

	threshold := p.Threshold
	signal := schema.AdvancedDriftSignal{
		Reference: schema.ReferenceData{
			Input: schema.MonitorInput{
				Type: string(schema.MLTableAsset),
				Path: schema.DatasetReference(p.ReferenceDataset),
			},
			ColumnNames: map[string]string{"target_column": targetLabelColumn},
		},
		Production: schema.ProductionData{
			Input: schema.MonitorInput{
				Type: string(schema.MLTableAsset),
				Path: schema.DatasetReference(p.ProductionDs),
			},
			Window: schema.DataWindow{
				LookbackOffset: lookbackOffset,
				LookbackSize:   lookbackSize,
			},
		},
		Features:     p.Features,
		Thresholds:   schema.MetricThresholds{Numerical: &threshold},
		AlertEnabled: true,
	}

	return &schema.MonitorScheduleResource{
		Name: p.ScheduleName,
		Trigger: schema.RecurrenceTrigger{
			Frequency: string(p.Frequency),
			Interval:  1,
			Pattern: schema.RecurrencePattern{
				Hours:   triggerHour,
				Minutes: triggerMinute,
			},
		},
		Definition: schema.MonitorDefinition{
			Compute: schema.SparkCompute{
				InstanceType:   sparkInstanceType,
				RuntimeVersion: sparkRuntime,
			},
			Target: schema.MonitoringTarget{MLTask: monitorMLTask},
			Signals: map[string]schema.AdvancedDriftSignal{
				p.SignalName: signal,
			},
			Notification: schema.AlertNotification{
				Emails: []string{alertEmail},
			},
		},
	}
}

// DeployMonitor submits the assembled schedule resource to the workspace and
// returns the summary the workspace reports back.
func DeployMonitor(ctx context.Context, deployer contract.MonitorDeployer, p MonitorResourceParams) (*schema.ScheduleSummary, error) {
	if p.ScheduleName == "" || p.SignalName == "" {
		return nil, fmt.Errorf("schedule and signal names are required for deploy")
	}
	resource := BuildMonitorResource(p)
	summary, err := deployer.UpsertMonitorSchedule(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy monitor schedule %s: %w", p.ScheduleName, err)
	}
	return summary, nil
}
