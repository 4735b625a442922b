package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/model"
)

//go:embed template/router_prompt.txt
var routerSystemPrompt string

// RenderRouterSystem renders the routing system prompt via the Eino prompt
// component. Only known tokens are replaced so literal braces elsewhere in
// the template survive untouched.
func RenderRouterSystem(ctx context.Context, persona model.PersonaConfig) (string, error) {
	content := strings.NewReplacer(
		"{business_name}", persona.BusinessName,
		"{business_type}", persona.BusinessType,
	).Replace(routerSystemPrompt)

	// Wrap via Eino prompt component using a messages placeholder to emit callbacks
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("router prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("router prompt render: empty result")
	}
	return msgs[0].Content, nil
}
