package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/model"
)

// MessagesManager mediates between the graph nodes and the conversation
// repository: it persists turns and serves a bounded slice of recent history
// for prompting.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxTurns         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxTurns:         config.MaxTurns,
	}
}

// ProcessUserMessage appends the user turn to the conversation and returns
// the recent history, trimmed to the configured turn budget. The returned
// slice includes the new user turn as its last element.
func (cm *MessagesManager) ProcessUserMessage(ctx context.Context, conversationID string, message string) ([]*schema.Message, error) {
	userMsg := schema.UserMessage(message)
	if err := cm.conversationRepo.AddMessage(ctx, conversationID, userMsg); err != nil {
		return nil, err
	}

	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return trimTail(history.Messages, cm.maxTurns), nil
}

// SaveResponse persists the assistant's final turn.
func (cm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	assistantMsg := schema.AssistantMessage(content, nil)
	return cm.conversationRepo.AddMessage(ctx, conversationID, assistantMsg)
}

// ====================== Helper function ======================
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
