package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

const ToolScheduleCall = "schedule_support_call"

// Business hours for scheduled calls, local time, Monday through Friday.
const (
	businessOpenHour  = 9
	businessCloseHour = 17
)

type ScheduleCallInput struct {
	IssueSummary  string `json:"issue_summary"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	CallType      string `json:"call_type"`
}

type ScheduleCallOutput struct {
	AppointmentID string `json:"appointment_id"`
	ScheduledFor  string `json:"scheduled_for"`
	CallType      string `json:"call_type"`
	IssueSummary  string `json:"issue_summary"`
}

func normalizeCallType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "video":
		return "video"
	default:
		return "phone"
	}
}

// validateSlot parses the requested date and time and enforces the
// business-hours window. The returned time carries no location; callers
// treat it as local.
func validateSlot(date, clock string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}

	slot := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	switch slot.Weekday() {
	case time.Saturday, time.Sunday:
		return time.Time{}, fmt.Errorf("calls are scheduled Monday through Friday, %s is a %s", date, slot.Weekday())
	}
	if t.Hour() < businessOpenHour || t.Hour() >= businessCloseHour {
		return time.Time{}, fmt.Errorf("calls are scheduled between %02d:00 and %02d:00, got %s",
			businessOpenHour, businessCloseHour, clock)
	}
	return slot, nil
}

func newAppointmentID() string {
	return "APT-" + strings.ToUpper(uuid.NewString()[:8])
}

func scheduleSupportCallTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolScheduleCall,
			Desc: "Schedule a phone or video call with a human support specialist.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"issue_summary": {
					Type:     schema.String,
					Desc:     "Short summary of what the call is about",
					Required: true,
				},
				"preferred_date": {
					Type:     schema.String,
					Desc:     "Requested date, YYYY-MM-DD",
					Required: true,
				},
				"preferred_time": {
					Type:     schema.String,
					Desc:     "Requested time, HH:MM, 24h clock",
					Required: true,
				},
				"call_type": {
					Type: schema.String,
					Desc: "Call type: phone or video",
					Enum: []string{"phone", "video"},
				},
			}),
		},
		func(ctx context.Context, in *ScheduleCallInput) (*ScheduleCallOutput, error) {
			slot, err := validateSlot(in.PreferredDate, in.PreferredTime)
			if err != nil {
				return nil, err
			}
			return &ScheduleCallOutput{
				AppointmentID: newAppointmentID(),
				ScheduledFor:  slot.Format("Monday, January 2 2006 at 15:04"),
				CallType:      normalizeCallType(in.CallType),
				IssueSummary:  strings.TrimSpace(in.IssueSummary),
			}, nil
		},
	)
}
