package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/agent-swarm/server/internal/agent/model"
	"github.com/agent-swarm/server/internal/core"
	logx "github.com/agent-swarm/server/pkg/logger"
)

// QueryRequest is the inbound chat payload. UserID doubles as the
// conversation key; anonymous requests get a fresh one per call.
type QueryRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// ResponseMessage mirrors the chat-message shape downstream clients consume.
type ResponseMessage struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// QueryResponse is the /query envelope. The status code is always 200: a
// failed run still produces a human-readable message, and Error carries the
// diagnostic for clients that want it.
type QueryResponse struct {
	Messages []ResponseMessage `json:"messages"`
	Warnings []string          `json:"warnings,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": core.Version,
	})
}

func (s *Server) handleQuery(c *fiber.Ctx) error {
	var req QueryRequest
	if err := c.BodyParser(&req); err != nil {
		logx.Warn().Err(err).Msg("Malformed query payload")
		return c.JSON(QueryResponse{
			Messages: []ResponseMessage{{
				Content: "I couldn't read that request. Please send a JSON body with a \"message\" field.",
				Type:    "AIMessage",
			}},
			Error: "invalid request body",
		})
	}

	conversationID := req.UserID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	result, err := s.runner.Invoke(c.Context(), model.QueryInput{
		ConversationID: conversationID,
		Message:        req.Message,
	})
	if err != nil {
		logx.Error().Err(err).Str("conversation_id", conversationID).Msg("Query run failed")
	}

	resp := QueryResponse{
		Messages: []ResponseMessage{{
			Content: result.Response,
			Type:    "AIMessage",
		}},
		Warnings: result.Warnings,
		Error:    result.Err,
	}
	return c.JSON(resp)
}
