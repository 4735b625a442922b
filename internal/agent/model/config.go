package model

import "time"

// ================ Config ================

type ConversationConfig struct {
	TTL      time.Duration `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int           `envconfig:"CONVERSATION_MAX_TURNS" default:"10"`
}

type RouterModelConfig struct {
	Model       string        `envconfig:"ROUTER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int           `envconfig:"ROUTER_MAX_TOKENS" default:"256"`
	Temperature float32       `envconfig:"ROUTER_TEMPERATURE" default:"0"`
	Timeout     time.Duration `envconfig:"ROUTER_TIMEOUT" default:"15s"`
}

type KnowledgeModelConfig struct {
	Model       string        `envconfig:"KNOWLEDGE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int           `envconfig:"KNOWLEDGE_MAX_TOKENS" default:"2000"`
	Temperature float32       `envconfig:"KNOWLEDGE_TEMPERATURE" default:"0.2"`
	Timeout     time.Duration `envconfig:"GENERATION_TIMEOUT" default:"30s"`
}

type PersonalityModelConfig struct {
	Model       string        `envconfig:"PERSONALITY_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int           `envconfig:"PERSONALITY_MAX_TOKENS" default:"2000"`
	Temperature float32       `envconfig:"PERSONALITY_TEMPERATURE" default:"0.4"`
	Timeout     time.Duration `envconfig:"PERSONALITY_TIMEOUT" default:"20s"`
}

type RetrievalConfig struct {
	TopK            int    `envconfig:"RETRIEVAL_TOP_K" default:"4"`
	MaxContextChars int    `envconfig:"RETRIEVAL_MAX_CONTEXT_CHARS" default:"6000"`
	EmbeddingModel  string `envconfig:"RETRIEVAL_EMBEDDING_MODEL" default:"text-embedding-004"`
	Dimensions      int    `envconfig:"RETRIEVAL_DIMENSIONS" default:"768"`
}

// PersonaConfig controls the brand voice the personality agent writes in.
type PersonaConfig struct {
	BusinessName string `envconfig:"PERSONA_BUSINESS_NAME" default:"InfinitePay"`
	BusinessType string `envconfig:"PERSONA_BUSINESS_TYPE" default:"payments platform"`
}
