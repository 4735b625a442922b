package nodes

import (
	"context"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/model"
	logx "github.com/agent-swarm/server/pkg/logger"
)

// Node keys used when wiring the graph.
const (
	NodeRouter      = "Router"
	NodeKnowledge   = "KnowledgeAgent"
	NodeSupport     = "SupportAgent"
	NodeFallback    = "FallbackAgent"
	NodePersonality = "PersonalityAgent"
)

// NewRouteCondition creates the branch condition that dispatches the routed
// request to its content agent. The route set is closed, so the default arm
// is the fallback agent, never an error.
func NewRouteCondition() func(context.Context, model.Route) (string, error) {
	return func(ctx context.Context, route model.Route) (string, error) {
		switch route {
		case model.RouteKnowledge:
			logx.Debug().Msg("Routing to KnowledgeAgent")
			return NodeKnowledge, nil
		case model.RouteSupport:
			logx.Debug().Msg("Routing to SupportAgent")
			return NodeSupport, nil
		default:
			logx.Debug().Str("route", string(route)).Msg("Routing to FallbackAgent")
			return NodeFallback, nil
		}
	}
}

// generate calls the chat model with a per-call deadline so a stalled
// provider cannot hold the whole run.
func generate(ctx context.Context, m einomodel.BaseChatModel, msgs []*schema.Message, timeout time.Duration) (*schema.Message, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return m.Generate(ctx, msgs)
}
