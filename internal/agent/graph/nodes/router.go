package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/graph/conversations"
	"github.com/agent-swarm/server/internal/agent/graph/parsers"
	"github.com/agent-swarm/server/internal/agent/graph/prompts"
	"github.com/agent-swarm/server/internal/agent/model"
	errx "github.com/agent-swarm/server/internal/core/error"
	logx "github.com/agent-swarm/server/pkg/logger"
)

// NewRouterPreHandler seeds the run state from the incoming query.
func NewRouterPreHandler() func(context.Context, model.QueryInput, *model.State) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.State) (model.QueryInput, error) {
		s.ConversationID = in.ConversationID
		s.CurrentMessage = in.Message
		return in, nil
	}
}

// NewRouterNode creates the Router node. It persists the user turn, asks the
// routing model for a route token and parses it against the closed route
// set. A routing failure never fails the run: it is recorded as a warning
// and the request proceeds on the fallback route.
func NewRouterNode(
	mm *conversations.MessagesManager,
	models *ChatModels,
	routerCfg *model.RouterModelConfig,
	persona model.PersonaConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) (model.Route, error) {
		history, err := mm.ProcessUserMessage(ctx, input.ConversationID, input.Message)
		if err != nil {
			// History is an aid, not a requirement. Route on the bare message.
			logx.Error().Err(err).Str("conversation_id", input.ConversationID).
				Msg("Error loading conversation history")
			history = []*schema.Message{schema.UserMessage(input.Message)}
			warnState(ctx, errx.WrapRedis(err))
		}
		setHistory(ctx, history)

		systemPrompt, err := prompts.RenderRouterSystem(ctx, persona)
		if err != nil {
			warnState(ctx, errx.Classification(err))
			return model.RouteFallback, nil
		}

		messages := append([]*schema.Message{schema.SystemMessage(systemPrompt)}, history...)

		out, err := generate(ctx, models.Router, messages, routerCfg.Timeout)
		if err != nil {
			logx.Error().Err(err).Str("conversation_id", input.ConversationID).
				Msg("Router model call failed")
			warnState(ctx, errx.Classification(err))
			return model.RouteFallback, nil
		}
		logUsage(input.ConversationID, NodeRouter, models.RouterModelName, out)

		route := parsers.ParseRoute(out.Content)
		logx.Debug().
			Str("conversation_id", input.ConversationID).
			Str("raw", out.Content).
			Str("route", string(route)).
			Msg("Message routed")
		return route, nil
	})
}

// NewRouterPostHandler records the chosen route in state.
func NewRouterPostHandler() func(context.Context, model.Route, *model.State) (model.Route, error) {
	return func(ctx context.Context, out model.Route, s *model.State) (model.Route, error) {
		s.Route = out
		return out, nil
	}
}

// warnState records a non-fatal error on the run state from inside a lambda.
func warnState(ctx context.Context, appErr *errx.AppError) {
	_ = compose.ProcessState(ctx, func(_ context.Context, s *model.State) error {
		s.Warn(appErr)
		return nil
	})
}

// setHistory stores the prompt history on state for downstream agents.
func setHistory(ctx context.Context, history []*schema.Message) {
	_ = compose.ProcessState(ctx, func(_ context.Context, s *model.State) error {
		s.History = history
		return nil
	})
}
