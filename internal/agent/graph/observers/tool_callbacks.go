package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/tool"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/agent-swarm/server/pkg/logger"
)

func newToolHandler() *callbackHelper.ToolCallbackHandler {
	return &callbackHelper.ToolCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *tool.CallbackInput) context.Context {
			ev := logx.Debug().Str("tool", info.Name)
			if input != nil {
				ev = ev.Str("arguments", input.ArgumentsInJSON)
			}
			ev.Msg("Tool start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *tool.CallbackOutput) context.Context {
			ev := logx.Debug().Str("tool", info.Name)
			if output != nil {
				ev = ev.Str("response", output.Response)
			}
			ev.Msg("Tool end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("tool", info.Name).Msg("Tool failed")
			return ctx
		},
	}
}
