package observers

import (
	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
)

// NewAllCallbacks aggregates all observer handlers (prompt, tool, model)
// into one callbacks.Handler attached per run.
func NewAllCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Tool(newToolHandler()).
		ChatModel(newModelHandler()).
		Prompt(newPromptHandler()).
		Handler()
}
