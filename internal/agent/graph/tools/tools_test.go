package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(context.Background(), GetSupportTools()...)
	require.NoError(t, err)
	return r
}

func TestRegistryInvokeUnknownTool(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Invoke(context.Background(), "does_not_exist", `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestRegistryInfos(t *testing.T) {
	r := newTestRegistry(t)

	infos, err := r.Infos(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.ElementsMatch(t, []string{ToolCreateTicket, ToolScheduleCall}, names)
}

func TestCreateTicket(t *testing.T) {
	r := newTestRegistry(t)

	args, _ := json.Marshal(CreateTicketInput{
		IssueDescription: "my card machine is not working",
		Priority:         "CRITICAL",
		Category:         "device",
	})
	raw, err := r.Invoke(context.Background(), ToolCreateTicket, string(args))
	require.NoError(t, err)

	var out CreateTicketOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.True(t, strings.HasPrefix(out.TicketID, "TICK-"))
	assert.Len(t, out.TicketID, len("TICK-")+8)
	assert.Equal(t, "urgent", out.Priority)
	assert.Equal(t, "hardware", out.Category)
	assert.Equal(t, "within 2 hours", out.ExpectedResponse)
}

func TestCreateTicketDefaults(t *testing.T) {
	r := newTestRegistry(t)

	args, _ := json.Marshal(CreateTicketInput{IssueDescription: "something is off"})
	raw, err := r.Invoke(context.Background(), ToolCreateTicket, string(args))
	require.NoError(t, err)

	var out CreateTicketOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Equal(t, "normal", out.Priority)
	assert.Equal(t, "general", out.Category)
	assert.Equal(t, "within 24 hours", out.ExpectedResponse)
}

func TestScheduleCall(t *testing.T) {
	r := newTestRegistry(t)

	// 2026-09-02 is a Wednesday.
	args, _ := json.Marshal(ScheduleCallInput{
		IssueSummary:  "help with settlement setup",
		PreferredDate: "2026-09-02",
		PreferredTime: "10:30",
		CallType:      "video",
	})
	raw, err := r.Invoke(context.Background(), ToolScheduleCall, string(args))
	require.NoError(t, err)

	var out ScheduleCallOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.True(t, strings.HasPrefix(out.AppointmentID, "APT-"))
	assert.Equal(t, "video", out.CallType)
	assert.Contains(t, out.ScheduledFor, "10:30")
}

func TestScheduleCallRejectsWeekend(t *testing.T) {
	r := newTestRegistry(t)

	// 2026-09-05 is a Saturday.
	args, _ := json.Marshal(ScheduleCallInput{
		IssueSummary:  "weekend call",
		PreferredDate: "2026-09-05",
		PreferredTime: "10:00",
	})
	_, err := r.Invoke(context.Background(), ToolScheduleCall, string(args))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Monday through Friday")
}

func TestScheduleCallRejectsOutsideBusinessHours(t *testing.T) {
	r := newTestRegistry(t)

	args, _ := json.Marshal(ScheduleCallInput{
		IssueSummary:  "late call",
		PreferredDate: "2026-09-02",
		PreferredTime: "18:00",
	})
	_, err := r.Invoke(context.Background(), ToolScheduleCall, string(args))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 09:00 and 17:00")
}

func TestScheduleCallRejectsBadFormats(t *testing.T) {
	r := newTestRegistry(t)

	args, _ := json.Marshal(ScheduleCallInput{
		IssueSummary:  "bad date",
		PreferredDate: "next tuesday",
		PreferredTime: "10:00",
	})
	_, err := r.Invoke(context.Background(), ToolScheduleCall, string(args))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")

	args, _ = json.Marshal(ScheduleCallInput{
		IssueSummary:  "bad time",
		PreferredDate: "2026-09-02",
		PreferredTime: "morning",
	})
	_, err = r.Invoke(context.Background(), ToolScheduleCall, string(args))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time")
}

func TestLookupFAQ(t *testing.T) {
	entry, ok := LookupFAQ("where is my refund?")
	require.True(t, ok)
	assert.Equal(t, "refund status", entry.Topic)

	entry, ok = LookupFAQ("I forgot my password")
	require.True(t, ok)
	assert.Equal(t, "password reset", entry.Topic)

	_, ok = LookupFAQ("tell me a joke")
	assert.False(t, ok)
}
