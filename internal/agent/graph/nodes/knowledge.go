package nodes

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/graph/prompts"
	"github.com/agent-swarm/server/internal/agent/model"
	errx "github.com/agent-swarm/server/internal/core/error"
	"github.com/agent-swarm/server/internal/rag"
	logx "github.com/agent-swarm/server/pkg/logger"
)

// NoContextDisclaimer is the knowledge agent's answer when retrieval yields
// nothing usable. No generation call is made in that case: an ungrounded
// answer is worse than an honest miss.
const NoContextDisclaimer = "I couldn't find anything about that in our documentation. " +
	"Could you rephrase the question, or ask me about our products, fees or features?"

// genericFailureDraft is the draft used when generation itself fails; the run
// is already marked fatal at that point.
const genericFailureDraft = "I'm sorry, I wasn't able to answer that right now. Please try again in a moment."

// NewKnowledgeNode creates the KnowledgeAgent node: retrieve, assemble
// context, generate a grounded draft. Retrieval failure degrades to the
// disclaimer with a warning; generation failure is fatal for the run but
// still produces a draft so the personality stage has something to carry.
func NewKnowledgeNode(
	retriever *rag.Retriever,
	models *ChatModels,
	knowledgeCfg *model.KnowledgeModelConfig,
	retrievalCfg *model.RetrievalConfig,
	persona model.PersonaConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, _ model.Route) (*schema.Message, error) {
		var (
			conversationID string
			message        string
			history        []*schema.Message
		)
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.State) error {
			conversationID = s.ConversationID
			message = s.CurrentMessage
			history = s.History
			return nil
		})
		if err != nil {
			return nil, err
		}

		matches, retErr := retriever.Retrieve(ctx, message, retrievalCfg.TopK)
		if retErr != nil {
			logx.Error().Err(retErr).Str("conversation_id", conversationID).
				Msg("Retrieval unavailable")
			warnState(ctx, errx.Retrieval(retErr))
			matches = nil
		}

		contextText := rag.AssembleContext(matches, retrievalCfg.MaxContextChars)
		if strings.TrimSpace(contextText) == "" {
			logx.Debug().Str("conversation_id", conversationID).
				Msg("Empty retrieval context, answering with disclaimer")
			return saveDraft(ctx, matches, NoContextDisclaimer)
		}

		systemPrompt, err := prompts.RenderKnowledgeSystem(ctx, persona, contextText)
		if err != nil {
			setFatal(ctx, errx.Generation(err))
			return saveDraft(ctx, matches, genericFailureDraft)
		}

		messages := append([]*schema.Message{schema.SystemMessage(systemPrompt)}, history...)

		out, err := generate(ctx, models.Knowledge, messages, knowledgeCfg.Timeout)
		if err != nil {
			logx.Error().Err(err).Str("conversation_id", conversationID).
				Msg("Knowledge generation failed")
			setFatal(ctx, errx.Generation(err))
			return saveDraft(ctx, matches, genericFailureDraft)
		}
		logUsage(conversationID, NodeKnowledge, models.KnowledgeModelName, out)

		return saveDraft(ctx, matches, out.Content)
	})
}

// saveDraft records the content agent's output on state and returns it as
// the message handed to the personality stage.
func saveDraft(ctx context.Context, matches []rag.Match, draft string) (*schema.Message, error) {
	err := compose.ProcessState(ctx, func(_ context.Context, s *model.State) error {
		s.Retrieved = matches
		s.Draft = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schema.AssistantMessage(draft, nil), nil
}

// setFatal marks the run as failed. The personality stage still executes and
// the serving shell reports the error alongside the best available response.
func setFatal(ctx context.Context, appErr *errx.AppError) {
	_ = compose.ProcessState(ctx, func(_ context.Context, s *model.State) error {
		if s.Fatal == nil {
			s.Fatal = appErr
		}
		return nil
	})
}
