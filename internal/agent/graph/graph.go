package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/agent-swarm/server/internal/agent/graph/conversations"
	"github.com/agent-swarm/server/internal/agent/graph/nodes"
	"github.com/agent-swarm/server/internal/agent/graph/observers"
	"github.com/agent-swarm/server/internal/agent/graph/tools"
	"github.com/agent-swarm/server/internal/agent/model"
	errx "github.com/agent-swarm/server/internal/core/error"
	"github.com/agent-swarm/server/internal/rag"
	logx "github.com/agent-swarm/server/pkg/logger"
)

// Runner executes the compiled graph for one user query. A non-nil Result is
// returned even when the run fails: the Response field always carries a
// human-readable message and Err describes the fatal error, if any.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (*model.Result, error)
}

// Config holds everything needed to compose the full response graph
// end-to-end. This is a convenience layer over GraphConfig that also
// constructs ChatModels and MessagesManager.
type Config struct {
	APIKey  string
	BaseURL string

	RouterModel      model.RouterModelConfig
	KnowledgeModel   model.KnowledgeModelConfig
	PersonalityModel model.PersonalityModelConfig
	Retrieval        model.RetrievalConfig
	Persona          model.PersonaConfig
	Conversation     model.ConversationConfig

	ConversationRepo model.ConversationRepository
	Retriever        *rag.Retriever
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModels      *nodes.ChatModels
	MessagesManager *conversations.MessagesManager
	Retriever       *rag.Retriever

	RouterConfig      *model.RouterModelConfig
	KnowledgeConfig   *model.KnowledgeModelConfig
	PersonalityConfig *model.PersonalityModelConfig
	RetrievalConfig   *model.RetrievalConfig
	Persona           model.PersonaConfig
}

// GraphBuilder handles the construction of the agent pipeline graph
type GraphBuilder struct {
	config   *GraphConfig
	registry *tools.Registry
	graph    *compose.Graph[model.QueryInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (*model.Result, error) {
	// Malformed input is rejected before any model or storage work happens.
	if strings.TrimSpace(in.Message) == "" {
		appErr := errx.Malformed("message must not be empty")
		return &model.Result{
			Response: "I didn't receive a message. What can I help you with?",
			Err:      appErr.Error(),
		}, appErr
	}

	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return &model.Result{
			Response: "Something went wrong on our side. Please try again in a moment.",
			Err:      err.Error(),
		}, err
	}
	if out == nil {
		return &model.Result{Response: ""}, nil
	}

	result := &model.Result{Response: out.Content}
	if v, ok := out.Extra[model.ExtraRoute].(string); ok {
		result.Route = model.Route(v)
	}
	if v, ok := out.Extra[model.ExtraWarnings].([]string); ok {
		result.Warnings = v
	}
	if v, ok := out.Extra[model.ExtraError].(string); ok {
		result.Err = v
	}
	return result, nil
}

// BuildResponseGraph composes ChatModels, MessagesManager, builds the graph,
// and returns a Runner.
func BuildResponseGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Retriever == nil {
		return nil, fmt.Errorf("retriever is nil")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		RouterConfig:      &cfg.RouterModel,
		KnowledgeConfig:   &cfg.KnowledgeModel,
		PersonalityConfig: &cfg.PersonalityModel,
	})
	if err != nil {
		return nil, err
	}

	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:        cms,
		MessagesManager:   mm,
		Retriever:         cfg.Retriever,
		RouterConfig:      &cfg.RouterModel,
		KnowledgeConfig:   &cfg.KnowledgeModel,
		PersonalityConfig: &cfg.PersonalityModel,
		RetrievalConfig:   &cfg.Retrieval,
		Persona:           cfg.Persona,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Response graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled agent graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Router == nil ||
		config.ChatModels.Knowledge == nil || config.ChatModels.Personality == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.Retriever == nil {
		return nil, fmt.Errorf("retriever is nil")
	}
	if config.RouterConfig == nil || config.KnowledgeConfig == nil ||
		config.PersonalityConfig == nil || config.RetrievalConfig == nil {
		return nil, fmt.Errorf("model config is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.State {
				return &model.State{}
			}),
		),
	}

	if err := builder.setupTools(ctx); err != nil {
		return nil, err
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// setupTools builds the support tool registry.
func (b *GraphBuilder) setupTools(ctx context.Context) error {
	registry, err := tools.NewRegistry(ctx, tools.GetSupportTools()...)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to build tool registry")
		return fmt.Errorf("failed to build tool registry: %w", err)
	}
	b.registry = registry
	return nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeRouter,
		nodes.NewRouterNode(b.config.MessagesManager, b.config.ChatModels, b.config.RouterConfig, b.config.Persona),
		compose.WithStatePreHandler(nodes.NewRouterPreHandler()),
		compose.WithStatePostHandler(nodes.NewRouterPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeKnowledge,
		nodes.NewKnowledgeNode(b.config.Retriever, b.config.ChatModels, b.config.KnowledgeConfig, b.config.RetrievalConfig, b.config.Persona),
	)

	b.graph.AddLambdaNode(nodes.NodeSupport,
		nodes.NewSupportNode(b.registry),
	)

	b.graph.AddLambdaNode(nodes.NodeFallback,
		nodes.NewFallbackNode(),
	)

	b.graph.AddLambdaNode(nodes.NodePersonality,
		nodes.NewPersonalityNode(b.config.ChatModels, b.config.PersonalityConfig, b.config.Persona),
		compose.WithStatePostHandler(nodes.NewPersonalityPostHandler(b.config.MessagesManager)),
	)
}

// addEdges creates the main flow connections between nodes. Every content
// agent converges on the personality stage; nothing reaches END without it.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeRouter},
		{nodes.NodeKnowledge, nodes.NodePersonality},
		{nodes.NodeSupport, nodes.NodePersonality},
		{nodes.NodeFallback, nodes.NodePersonality},
		{nodes.NodePersonality, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates the routing branch after the router node
func (b *GraphBuilder) addBranches() error {
	routeBranch := compose.NewGraphBranch(
		nodes.NewRouteCondition(),
		map[string]bool{
			nodes.NodeKnowledge: true,
			nodes.NodeSupport:   true,
			nodes.NodeFallback:  true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeRouter, routeBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding route branch")
		return fmt.Errorf("error adding route branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(20))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}

// NewRunner wraps an already compiled runnable. Used by tests and callers
// that build GraphConfig themselves.
func NewRunner(runnable compose.Runnable[model.QueryInput, *schema.Message]) Runner {
	return &graphRunner{runnable: runnable}
}
