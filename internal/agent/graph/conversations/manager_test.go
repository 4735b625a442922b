package conversations

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-swarm/server/internal/agent/model"
	"github.com/agent-swarm/server/internal/agent/repo"
)

func newManager(maxTurns int) (*MessagesManager, *repo.MemoryConversationRepository) {
	r := repo.NewMemoryConversationRepository()
	return NewMessagesManager(r, model.ConversationConfig{MaxTurns: maxTurns}), r
}

func TestProcessUserMessagePersistsAndReturnsTurn(t *testing.T) {
	mm, r := newManager(10)

	history, err := mm.ProcessUserMessage(context.Background(), "c1", "hello")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, schema.User, history[0].Role)
	assert.Equal(t, "hello", history[0].Content)

	stored, err := r.LoadHistory(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 1)
}

func TestProcessUserMessageTrimsToMaxTurns(t *testing.T) {
	mm, _ := newManager(4)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := mm.ProcessUserMessage(ctx, "c2", fmt.Sprintf("question %d", i))
		require.NoError(t, err)
		require.NoError(t, mm.SaveResponse(ctx, "c2", fmt.Sprintf("answer %d", i)))
	}

	history, err := mm.ProcessUserMessage(ctx, "c2", "latest question")
	require.NoError(t, err)
	require.Len(t, history, 4)
	// The newest user turn is always the last element.
	assert.Equal(t, "latest question", history[len(history)-1].Content)
	assert.Equal(t, schema.User, history[len(history)-1].Role)
}

func TestSaveResponseAppendsAssistantTurn(t *testing.T) {
	mm, r := newManager(10)

	ctx := context.Background()
	_, err := mm.ProcessUserMessage(ctx, "c3", "hi")
	require.NoError(t, err)
	require.NoError(t, mm.SaveResponse(ctx, "c3", "hello, how can I help?"))

	stored, err := r.LoadHistory(ctx, "c3")
	require.NoError(t, err)
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, schema.Assistant, stored.Messages[1].Role)
	assert.Equal(t, "hello, how can I help?", stored.Messages[1].Content)
}

func TestTrimTailUnlimitedWhenMaxTurnsZero(t *testing.T) {
	mm, _ := newManager(0)

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		_, err := mm.ProcessUserMessage(ctx, "c4", fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	history, err := mm.ProcessUserMessage(ctx, "c4", "final")
	require.NoError(t, err)
	assert.Len(t, history, 7)
}
