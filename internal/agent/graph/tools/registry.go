package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	logx "github.com/agent-swarm/server/pkg/logger"
)

// Registry is the capability boundary the support agent invokes tools
// through: a uniform invoke(name, args) call that keeps agent logic
// independent of how each tool is transported. Tools are fire-and-forget
// once issued; the registry never retries.
type Registry struct {
	tools map[string]tool.InvokableTool
}

// NewRegistry indexes the given tools by name. Every tool must be invokable.
func NewRegistry(ctx context.Context, ts ...tool.BaseTool) (*Registry, error) {
	r := &Registry{tools: make(map[string]tool.InvokableTool, len(ts))}
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		inv, ok := t.(tool.InvokableTool)
		if !ok {
			return nil, fmt.Errorf("tool %q is not invokable", info.Name)
		}
		r.tools[info.Name] = inv
	}
	return r, nil
}

// Invoke runs the named tool with JSON-encoded arguments and returns its
// JSON-encoded result.
func (r *Registry) Invoke(ctx context.Context, name string, argsJSON string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	logx.Debug().Str("tool", name).Msg("invoking tool")
	out, err := t.InvokableRun(ctx, argsJSON)
	if err != nil {
		logx.Error().Err(err).Str("tool", name).Msg("tool invocation failed")
		return "", err
	}
	return out, nil
}

// Infos returns the schema of every registered tool.
func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.tools))
	for _, t := range r.tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// GetSupportTools returns the transactional tools available to the support
// agent.
func GetSupportTools() []tool.BaseTool {
	return []tool.BaseTool{
		createSupportTicketTool(),
		scheduleSupportCallTool(),
	}
}
