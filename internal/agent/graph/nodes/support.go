package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/graph/tools"
	"github.com/agent-swarm/server/internal/agent/model"
	errx "github.com/agent-swarm/server/internal/core/error"
	logx "github.com/agent-swarm/server/pkg/logger"
)

// SubIntent is the support agent's deterministic classification of what the
// customer wants done. Detection is keyword based on purpose: support
// actions are transactional, and a wrong tool call is worse than asking.
type SubIntent string

const (
	SubIntentFAQ      SubIntent = "faq"
	SubIntentSchedule SubIntent = "schedule"
	SubIntentTicket   SubIntent = "ticket"
	SubIntentGeneral  SubIntent = "general"
)

var (
	dateRe = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	timeRe = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
)

var scheduleKeywords = []string{
	"schedule", "call me", "callback", "call back", "appointment",
	"talk to someone", "speak to", "speak with", "human", "agent", "specialist",
}

var ticketKeywords = []string{
	"not working", "doesn't work", "does not work", "broken", "stopped working",
	"problem", "issue", "bug", "complaint", "charged twice", "double charge",
	"wrong charge", "can't access", "cannot access", "locked out", "stuck",
}

// DetectSubIntent classifies the message. FAQ matches win so that canned
// answers short-circuit tool use; scheduling wins over ticketing because a
// customer asking for a call about a problem wants the call.
func DetectSubIntent(message string) SubIntent {
	lower := strings.ToLower(message)

	if _, ok := tools.LookupFAQ(message); ok {
		return SubIntentFAQ
	}
	for _, kw := range scheduleKeywords {
		if strings.Contains(lower, kw) {
			return SubIntentSchedule
		}
	}
	for _, kw := range ticketKeywords {
		if strings.Contains(lower, kw) {
			return SubIntentTicket
		}
	}
	return SubIntentGeneral
}

// inferPriority reads urgency cues from the message.
func inferPriority(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "urgent"), strings.Contains(lower, "asap"),
		strings.Contains(lower, "emergency"), strings.Contains(lower, "immediately"):
		return "urgent"
	case strings.Contains(lower, "can't"), strings.Contains(lower, "cannot"),
		strings.Contains(lower, "locked out"):
		return "high"
	default:
		return "normal"
	}
}

// NewSupportNode creates the SupportAgent node. It resolves the request
// deterministically: canned FAQ answers first, then transactional tools for
// scheduling and ticketing. A failed tool call is recorded as a warning and
// answered with an explanation, never a silent drop.
func NewSupportNode(registry *tools.Registry) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, _ model.Route) (*schema.Message, error) {
		var (
			conversationID string
			message        string
		)
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.State) error {
			conversationID = s.ConversationID
			message = s.CurrentMessage
			return nil
		})
		if err != nil {
			return nil, err
		}

		intent := DetectSubIntent(message)
		logx.Debug().
			Str("conversation_id", conversationID).
			Str("sub_intent", string(intent)).
			Msg("Support sub-intent detected")

		var draft string
		switch intent {
		case SubIntentFAQ:
			entry, _ := tools.LookupFAQ(message)
			draft = entry.Answer
		case SubIntentSchedule:
			draft = handleSchedule(ctx, registry, message)
		case SubIntentTicket:
			draft = handleTicket(ctx, registry, message)
		default:
			draft = "I can help with account and payment issues: I can answer common questions, " +
				"open a support ticket, or schedule a call with a specialist. " +
				"Could you tell me a bit more about what's going on?"
		}

		return saveDraft(ctx, nil, draft)
	})
}

func handleSchedule(ctx context.Context, registry *tools.Registry, message string) string {
	date := dateRe.FindString(message)
	clock := timeRe.FindString(message)
	if date == "" || clock == "" {
		return "I can schedule a call with a specialist for you. Calls are available " +
			"Monday through Friday, 09:00 to 17:00. What date (YYYY-MM-DD) and time (HH:MM) work for you?"
	}

	callType := "phone"
	if strings.Contains(strings.ToLower(message), "video") {
		callType = "video"
	}

	args, _ := json.Marshal(tools.ScheduleCallInput{
		IssueSummary:  message,
		PreferredDate: date,
		PreferredTime: clock,
		CallType:      callType,
	})
	raw, err := registry.Invoke(ctx, tools.ToolScheduleCall, string(args))
	if err != nil {
		warnState(ctx, errx.Tool(tools.ToolScheduleCall, err))
		return fmt.Sprintf("I wasn't able to book that slot: %v. "+
			"Calls are available Monday through Friday, 09:00 to 17:00. Would another time work?", err)
	}

	var out tools.ScheduleCallOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		warnState(ctx, errx.Tool(tools.ToolScheduleCall, err))
		return "Your call request went through, but I couldn't confirm the details. " +
			"You'll receive a confirmation shortly."
	}
	return fmt.Sprintf("Done! I've scheduled a %s call for %s. Your appointment reference is %s. "+
		"A specialist will reach out at the scheduled time.", out.CallType, out.ScheduledFor, out.AppointmentID)
}

func handleTicket(ctx context.Context, registry *tools.Registry, message string) string {
	args, _ := json.Marshal(tools.CreateTicketInput{
		IssueDescription: message,
		Priority:         inferPriority(message),
	})
	raw, err := registry.Invoke(ctx, tools.ToolCreateTicket, string(args))
	if err != nil {
		warnState(ctx, errx.Tool(tools.ToolCreateTicket, err))
		return "I wasn't able to open a ticket just now. Please try again in a few minutes, " +
			"or ask me to schedule a call with a specialist instead."
	}

	var out tools.CreateTicketOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		warnState(ctx, errx.Tool(tools.ToolCreateTicket, err))
		return "Your ticket was created, but I couldn't read back its reference. " +
			"Our team will follow up by email."
	}
	return fmt.Sprintf("I've opened ticket %s for this (%s priority). "+
		"Our team will get back to you %s.", out.TicketID, out.Priority, out.ExpectedResponse)
}
