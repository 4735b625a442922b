package tools

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

const ToolCreateTicket = "create_support_ticket"

type CreateTicketInput struct {
	IssueDescription string `json:"issue_description"`
	Priority         string `json:"priority"`
	Category         string `json:"category"`
}

type CreateTicketOutput struct {
	TicketID         string `json:"ticket_id"`
	IssueDescription string `json:"issue_description"`
	Priority         string `json:"priority"`
	Category         string `json:"category"`
	ExpectedResponse string `json:"expected_response"`
}

var responseTimeByPriority = map[string]string{
	"urgent": "within 2 hours",
	"high":   "within 6 hours",
	"normal": "within 24 hours",
	"low":    "within 48 hours",
}

// normalizePriority maps free-form priority text onto the closed set
// {low, normal, high, urgent}, defaulting to normal.
func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "urgent", "critical", "emergency":
		return "urgent"
	case "high":
		return "high"
	case "low", "minor":
		return "low"
	default:
		return "normal"
	}
}

func normalizeCategory(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "billing", "payment", "payments", "charge":
		return "billing"
	case "technical", "tech", "bug", "error":
		return "technical"
	case "account", "login", "access":
		return "account"
	case "hardware", "device", "machine":
		return "hardware"
	default:
		return "general"
	}
}

func newTicketID() string {
	return "TICK-" + strings.ToUpper(uuid.NewString()[:8])
}

func createSupportTicketTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCreateTicket,
			Desc: "Open a support ticket for an issue that cannot be resolved in chat.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"issue_description": {
					Type:     schema.String,
					Desc:     "Short description of the customer's issue",
					Required: true,
				},
				"priority": {
					Type: schema.String,
					Desc: "Ticket priority: low, normal, high or urgent",
					Enum: []string{"low", "normal", "high", "urgent"},
				},
				"category": {
					Type: schema.String,
					Desc: "Issue category, e.g. billing, technical, account, hardware",
				},
			}),
		},
		func(ctx context.Context, in *CreateTicketInput) (*CreateTicketOutput, error) {
			priority := normalizePriority(in.Priority)
			return &CreateTicketOutput{
				TicketID:         newTicketID(),
				IssueDescription: strings.TrimSpace(in.IssueDescription),
				Priority:         priority,
				Category:         normalizeCategory(in.Category),
				ExpectedResponse: responseTimeByPriority[priority],
			}, nil
		},
	)
}
