package model

import (
	"github.com/cloudwego/eino/schema"

	errx "github.com/agent-swarm/server/internal/core/error"
	"github.com/agent-swarm/server/internal/rag"
)

// Route selects which content agent handles a request. The set is closed:
// any classifier output outside it is mapped to RouteFallback.
type Route string

const (
	RouteKnowledge Route = "knowledge"
	RouteSupport   Route = "support"
	RouteFallback  Route = "fallback"
)

// State stores per-run pipeline state as Graph Local State.
// Concurrency model:
//   - This struct is registered via compose.WithGenLocalState and owned by a
//     single run; it is never shared across requests.
//   - All reads/writes happen only inside Eino state handlers
//     (WithStatePreHandler, WithStatePostHandler, compose.ProcessState),
//     which Eino serializes, so no mutex is required.
//   - Each field has a single writing stage: CurrentMessage and History are
//     set by the router pre-handler, Route by the router post-handler,
//     Retrieved and Draft by the content node, Final by the personality
//     post-handler.
type State struct {
	ConversationID string
	CurrentMessage string            // immutable once set
	History        []*schema.Message // prior turns plus the current user turn
	Route          Route             // set exactly once per run
	Retrieved      []rag.Match       // populated only on the knowledge route
	Draft          string            // content agent output before tone rewrite
	Final          string            // set exactly once, terminal

	Fatal    *errx.AppError   // short-circuits to the error-terminal path
	Warnings []*errx.AppError // non-fatal, diagnostic only
}

// Warn records a non-fatal failure without halting the run.
func (s *State) Warn(err *errx.AppError) {
	if err == nil {
		return
	}
	s.Warnings = append(s.Warnings, err)
}

// WarningMessages renders recorded warnings for the response envelope.
func (s *State) WarningMessages() []string {
	if len(s.Warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.Warnings))
	for _, w := range s.Warnings {
		out = append(out, w.Error())
	}
	return out
}

// QueryInput represents the input for processing user queries.
type QueryInput struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

// Result is what one completed run hands back to the serving shell.
type Result struct {
	Response string
	Route    Route
	Warnings []string
	Err      string // fatal error description, empty on success
}

// Extra keys used to carry run metadata on the final graph output message.
const (
	ExtraRoute    = "route"
	ExtraWarnings = "warnings"
	ExtraError    = "error"
)
