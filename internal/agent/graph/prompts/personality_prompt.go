package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/model"
)

//go:embed template/personality_prompt.txt
var personalitySystemPrompt string

// RenderPersonalitySystem renders the tone-rewrite system prompt.
func RenderPersonalitySystem(ctx context.Context, persona model.PersonaConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(personalitySystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"BusinessName": persona.BusinessName,
		"BusinessType": persona.BusinessType,
	})
	if err != nil {
		return "", fmt.Errorf("personality prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("personality prompt render: empty result")
	}
	return msgs[0].Content, nil
}
