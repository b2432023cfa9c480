package workspace

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/mlopshq/driftmon/schema"
)

// Trigger and action type discriminators used by the schedules endpoint.
const (
	recurrenceTriggerType   = "Recurrence"
	createMonitorActionType = "CreateMonitor"
)

// scheduleTrigger is the wire form of a schedule's recurrence trigger.
type scheduleTrigger struct {
	TriggerType string                    `json:"triggerType"`
	Frequency   string                    `json:"frequency,omitempty"`
	Interval    int                       `json:"interval,omitempty"`
	Schedule    *schema.RecurrencePattern `json:"schedule,omitempty"`
}

// scheduleAction is the wire form of what a schedule runs.
type scheduleAction struct {
	ActionType        string                    `json:"actionType"`
	MonitorDefinition *schema.MonitorDefinition `json:"monitorDefinition,omitempty"`
}

// scheduleProperties is the body of a schedule resource, shared between the
// deploy request and the list response.
type scheduleProperties struct {
	DisplayName       string          `json:"displayName,omitempty"`
	Description       string          `json:"description,omitempty"`
	ProvisioningState string          `json:"provisioningState,omitempty"`
	IsEnabled         bool            `json:"isEnabled"`
	Trigger           scheduleTrigger `json:"trigger"`
	Action            scheduleAction  `json:"action"`
}

// flatScheduleProperties is the body of the lightweight schedule descriptor
// used by the create path.
type flatScheduleProperties struct {
	Signals     []string `json:"signals"`
	Frequency   string   `json:"frequency"`
	Description string   `json:"description,omitempty"`
}

// UpsertSchedule registers a flat monitor-schedule descriptor.
func (c *Client) UpsertSchedule(ctx context.Context, sched *schema.MonitorSchedule) (*schema.MonitorSchedule, error) {
	body := armResource[flatScheduleProperties]{
		Properties: flatScheduleProperties{
			Signals:     sched.Signals,
			Frequency:   sched.Frequency,
			Description: sched.Description,
		},
	}
	var resp armResource[flatScheduleProperties]
	if err := c.doJSON(ctx, http.MethodPut, []string{"schedules", sched.Name}, body, &resp); err != nil {
		return nil, err
	}
	return &schema.MonitorSchedule{
		Name:        sched.Name,
		Signals:     resp.Properties.Signals,
		Frequency:   resp.Properties.Frequency,
		Description: resp.Properties.Description,
	}, nil
}

// UpsertMonitorSchedule submits a full monitor schedule resource and returns
// the summary the workspace reports back.
func (c *Client) UpsertMonitorSchedule(ctx context.Context, res *schema.MonitorScheduleResource) (*schema.ScheduleSummary, error) {
	trigger := res.Trigger
	body := armResource[scheduleProperties]{
		Properties: scheduleProperties{
			DisplayName: res.Name,
			IsEnabled:   true,
			Trigger: scheduleTrigger{
				TriggerType: recurrenceTriggerType,
				Frequency:   trigger.Frequency,
				Interval:    trigger.Interval,
				Schedule:    &trigger.Pattern,
			},
			Action: scheduleAction{
				ActionType:        createMonitorActionType,
				MonitorDefinition: &res.Definition,
			},
		},
	}

	var resp armResource[scheduleProperties]
	if err := c.doJSON(ctx, http.MethodPut, []string{"schedules", res.Name}, body, &resp); err != nil {
		return nil, err
	}
	summary := summaryFromResource(resp)
	if summary.Name == "" {
		summary.Name = res.Name
	}
	return &summary, nil
}

// ListSchedules enumerates the schedules known to the workspace.
func (c *Client) ListSchedules(ctx context.Context) ([]schema.ScheduleSummary, error) {
	var resp armList[scheduleProperties]
	if err := c.doJSON(ctx, http.MethodGet, []string{"schedules"}, nil, &resp); err != nil {
		return nil, err
	}

	summaries := make([]schema.ScheduleSummary, 0, len(resp.Value))
	for _, item := range resp.Value {
		summaries = append(summaries, summaryFromResource(item))
	}
	return summaries, nil
}

// summaryFromResource flattens a schedule resource into the summary form the
// rest of the CLI works with.
func summaryFromResource(res armResource[scheduleProperties]) schema.ScheduleSummary {
	props := res.Properties

	var createdAt time.Time
	if res.SystemData != nil {
		createdAt = res.SystemData.CreatedAt
	}

	summary := schema.ScheduleSummary{
		Name:              res.Name,
		DisplayName:       props.DisplayName,
		ProvisioningState: props.ProvisioningState,
		Enabled:           props.IsEnabled,
		IsMonitor:         props.Action.ActionType == createMonitorActionType,
		TriggerFrequency:  props.Trigger.Frequency,
		TriggerInterval:   props.Trigger.Interval,
		CreatedAt:         createdAt,
	}
	if def := props.Action.MonitorDefinition; def != nil {
		names := make([]string, 0, len(def.Signals))
		for name := range def.Signals {
			names = append(names, name)
		}
		sort.Strings(names)
		summary.SignalNames = names
	}
	return summary
}
