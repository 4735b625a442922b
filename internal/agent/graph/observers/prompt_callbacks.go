package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/prompt"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/agent-swarm/server/pkg/logger"
)

func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *prompt.CallbackInput) context.Context {
			logx.Debug().Str("component", info.Type).Str("node", info.Name).
				Msg("Prompt render start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *prompt.CallbackOutput) context.Context {
			ev := logx.Debug().Str("component", info.Type).Str("node", info.Name)
			if output != nil {
				ev = ev.Int("messages", len(output.Result))
			}
			ev.Msg("Prompt render end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("component", info.Type).Str("node", info.Name).
				Msg("Prompt render failed")
			return ctx
		},
	}
}
