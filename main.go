package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"google.golang.org/genai"

	"github.com/agent-swarm/server/internal/agent/graph"
	"github.com/agent-swarm/server/internal/agent/model"
	"github.com/agent-swarm/server/internal/agent/repo"
	"github.com/agent-swarm/server/internal/core"
	"github.com/agent-swarm/server/internal/rag"
	"github.com/agent-swarm/server/internal/server"
	logx "github.com/agent-swarm/server/pkg/logger"
	pkgpostgres "github.com/agent-swarm/server/pkg/postgres"
	pkgredis "github.com/agent-swarm/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure. Empty URLs degrade to in-process fallbacks so the
	// service still answers without Redis or Postgres.
	RedisURL    string `envconfig:"REDIS_URL"`
	PostgresURL string `envconfig:"POSTGRES_URL"`

	Redis    pkgredis.Config    `ignored:"true"`
	Postgres pkgpostgres.Config `ignored:"true"`

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Router       model.RouterModelConfig
	Knowledge    model.KnowledgeModelConfig
	Personality  model.PersonalityModelConfig
	Retrieval    model.RetrievalConfig
	Persona      model.PersonaConfig
	Conversation model.ConversationConfig

	Server server.Config
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment})

	// Conversation memory: Redis when configured, process memory otherwise.
	var conversationRepo model.ConversationRepository
	if cfg.RedisURL != "" {
		cfg.Redis.URL = cfg.RedisURL
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
		}
		defer rdb.Close()
		conversationRepo = repo.NewRedisConversationRepository(rdb, cfg.Conversation.TTL)
		logx.Info().Msg("Conversation memory: Redis")
	} else {
		conversationRepo = repo.NewMemoryConversationRepository()
		logx.Warn().Msg("REDIS_URL not set, conversation memory is process-local")
	}

	// Embeddings share the Gemini credentials with the chat models.
	embedClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create Gemini client for embeddings")
	}
	embedder := rag.NewGeminiEmbedder(embedClient, cfg.Retrieval.EmbeddingModel)

	// Vector index: pgvector when configured, empty in-memory index otherwise.
	var index rag.Index
	if cfg.PostgresURL != "" {
		cfg.Postgres.URL = cfg.PostgresURL
		pool, err := cfg.Postgres.New(ctx)
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Postgres pool")
		}
		defer pool.Close()
		index = rag.NewPostgresIndex(pool)
		logx.Info().Msg("Vector index: Postgres/pgvector")
	} else {
		index = rag.NewMemoryIndex(nil)
		logx.Warn().Msg("POSTGRES_URL not set, knowledge retrieval will return empty context")
	}

	runner, err := graph.BuildResponseGraph(ctx, graph.Config{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		RouterModel:      cfg.Router,
		KnowledgeModel:   cfg.Knowledge,
		PersonalityModel: cfg.Personality,
		Retrieval:        cfg.Retrieval,
		Persona:          cfg.Persona,
		Conversation:     cfg.Conversation,
		ConversationRepo: conversationRepo,
		Retriever:        rag.NewRetriever(embedder, index),
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build response graph")
	}

	srv := server.New(cfg.Server, runner)
	if err := srv.Run(); err != nil {
		logx.Fatal().Err(err).Msg("Server stopped")
	}
}
