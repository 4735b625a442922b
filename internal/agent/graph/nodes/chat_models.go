package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/agent-swarm/server/internal/agent/model"
	logx "github.com/agent-swarm/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey            string
	BaseURL           string
	RouterConfig      *model.RouterModelConfig
	KnowledgeConfig   *model.KnowledgeModelConfig
	PersonalityConfig *model.PersonalityModelConfig
}

// ChatModels holds one chat model per agent that generates text. The fields
// are interfaces so tests can substitute stubs without a live API key.
type ChatModels struct {
	Router      einomodel.BaseChatModel
	Knowledge   einomodel.BaseChatModel
	Personality einomodel.BaseChatModel

	RouterModelName      string
	KnowledgeModelName   string
	PersonalityModelName string
}

// NewChatModels creates the Router, Knowledge and Personality chat models
// sharing a single Gemini client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	routerModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.RouterConfig.Model,
		Temperature: &config.RouterConfig.Temperature,
		MaxTokens:   &config.RouterConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Router model")
		return nil, fmt.Errorf("error creating Router model: %w", err)
	}

	knowledgeModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.KnowledgeConfig.Model,
		Temperature: &config.KnowledgeConfig.Temperature,
		MaxTokens:   &config.KnowledgeConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Knowledge model")
		return nil, fmt.Errorf("error creating Knowledge model: %w", err)
	}

	personalityModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.PersonalityConfig.Model,
		Temperature: &config.PersonalityConfig.Temperature,
		MaxTokens:   &config.PersonalityConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Personality model")
		return nil, fmt.Errorf("error creating Personality model: %w", err)
	}

	logx.Info().
		Str("router_model", config.RouterConfig.Model).
		Str("knowledge_model", config.KnowledgeConfig.Model).
		Str("personality_model", config.PersonalityConfig.Model).
		Msg("Chat models created")

	return &ChatModels{
		Router:               routerModel,
		Knowledge:            knowledgeModel,
		Personality:          personalityModel,
		RouterModelName:      config.RouterConfig.Model,
		KnowledgeModelName:   config.KnowledgeConfig.Model,
		PersonalityModelName: config.PersonalityConfig.Model,
	}, nil
}
