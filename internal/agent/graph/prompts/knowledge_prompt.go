package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/model"
)

//go:embed template/knowledge_prompt.txt
var knowledgeSystemPrompt string

// RenderKnowledgeSystem renders the grounded-answer system prompt with the
// assembled retrieval context injected.
func RenderKnowledgeSystem(ctx context.Context, persona model.PersonaConfig, contextText string) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(knowledgeSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"BusinessName": persona.BusinessName,
		"BusinessType": persona.BusinessType,
		"Context":      contextText,
	})
	if err != nil {
		return "", fmt.Errorf("knowledge prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("knowledge prompt render: empty result")
	}
	return msgs[0].Content, nil
}
