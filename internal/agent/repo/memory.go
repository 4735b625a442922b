package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/model"
)

// MemoryConversationRepository keeps history in process memory. Used for
// local runs without Redis and for tests.
type MemoryConversationRepository struct {
	mu       sync.Mutex
	messages map[string][]*schema.Message
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{messages: make(map[string][]*schema.Message)}
}

func (r *MemoryConversationRepository) AddMessage(_ context.Context, conversationID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[conversationID] = append(r.messages[conversationID], message)
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(_ context.Context, conversationID string) (*model.ConversationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]*schema.Message, len(r.messages[conversationID]))
	copy(msgs, r.messages[conversationID])
	return &model.ConversationHistory{ConversationID: conversationID, Messages: msgs}, nil
}

func (r *MemoryConversationRepository) ClearHistory(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, conversationID)
	return nil
}

func (r *MemoryConversationRepository) GetMessageCount(_ context.Context, conversationID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages[conversationID]), nil
}
