package nodes

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/graph/conversations"
	"github.com/agent-swarm/server/internal/agent/graph/prompts"
	"github.com/agent-swarm/server/internal/agent/model"
	errx "github.com/agent-swarm/server/internal/core/error"
	logx "github.com/agent-swarm/server/pkg/logger"
)

// fallbackCapabilities is the FallbackAgent's static answer for requests no
// agent can serve. It states scope rather than apologising at length.
const fallbackCapabilities = "I'm not able to help with that, but here's what I can do: " +
	"answer questions about our products, fees and features, help with account or payment issues, " +
	"open a support ticket, or schedule a call with a specialist."

// NewFallbackNode creates the FallbackAgent node. No model call is made:
// the capability statement is fixed so out-of-scope requests cost nothing.
func NewFallbackNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, _ model.Route) (*schema.Message, error) {
		return saveDraft(ctx, nil, fallbackCapabilities)
	})
}

// NewPersonalityNode creates the PersonalityAgent node, the mandatory final
// stage. It rewrites the draft into the brand voice while preserving every
// fact, identifier and number. A rewrite failure is non-fatal: the draft is
// already a correct answer, so it passes through unchanged with a warning.
func NewPersonalityNode(
	models *ChatModels,
	personalityCfg *model.PersonalityModelConfig,
	persona model.PersonaConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, draft *schema.Message) (*schema.Message, error) {
		var (
			conversationID string
			fatal          bool
		)
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.State) error {
			conversationID = s.ConversationID
			fatal = s.Fatal != nil
			return nil
		})
		if err != nil {
			return nil, err
		}

		// A fatal run already carries a generic apology; rewriting it spends
		// tokens to vary an error message.
		if fatal || strings.TrimSpace(draft.Content) == "" {
			return draft, nil
		}

		systemPrompt, err := prompts.RenderPersonalitySystem(ctx, persona)
		if err != nil {
			warnState(ctx, errx.New(err, errx.KindGeneration, false, "personality rewrite skipped"))
			return draft, nil
		}

		messages := []*schema.Message{
			schema.SystemMessage(systemPrompt),
			schema.UserMessage(draft.Content),
		}

		out, err := generate(ctx, models.Personality, messages, personalityCfg.Timeout)
		if err != nil {
			logx.Error().Err(err).Str("conversation_id", conversationID).
				Msg("Personality rewrite failed, returning draft unchanged")
			warnState(ctx, errx.New(err, errx.KindGeneration, false, "personality rewrite skipped"))
			return draft, nil
		}
		logUsage(conversationID, NodePersonality, models.PersonalityModelName, out)

		if strings.TrimSpace(out.Content) == "" {
			warnState(ctx, errx.New(nil, errx.KindGeneration, false, "personality rewrite returned empty output"))
			return draft, nil
		}
		return out, nil
	})
}

// NewPersonalityPostHandler finalises the run: it records the final text,
// attaches run metadata to the outgoing message and persists the assistant
// turn. Failed runs are not written back to history.
func NewPersonalityPostHandler(mm *conversations.MessagesManager) func(context.Context, *schema.Message, *model.State) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, s *model.State) (*schema.Message, error) {
		s.Final = out.Content

		if out.Extra == nil {
			out.Extra = map[string]any{}
		}
		out.Extra[model.ExtraRoute] = string(s.Route)
		if warnings := s.WarningMessages(); len(warnings) > 0 {
			out.Extra[model.ExtraWarnings] = warnings
		}
		if s.Fatal != nil {
			out.Extra[model.ExtraError] = s.Fatal.Error()
			return out, nil
		}

		if err := mm.SaveResponse(ctx, s.ConversationID, out.Content); err != nil {
			logx.Error().Err(err).Str("conversation_id", s.ConversationID).
				Msg("Error saving assistant response")
			s.Warn(errx.WrapRedis(err))
			if warnings := s.WarningMessages(); len(warnings) > 0 {
				out.Extra[model.ExtraWarnings] = warnings
			}
		}
		return out, nil
	}
}
