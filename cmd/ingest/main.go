package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/genai"

	"github.com/agent-swarm/server/internal/agent/model"
	"github.com/agent-swarm/server/internal/rag"
	logx "github.com/agent-swarm/server/pkg/logger"
	pkgpostgres "github.com/agent-swarm/server/pkg/postgres"
)

// IngestConfig holds the knobs of the offline ingestion job.
type IngestConfig struct {
	PostgresURL string `envconfig:"POSTGRES_URL" required:"true"`
	APIKey      string `envconfig:"GEMINI_API_KEY" required:"true"`

	ChunkSize    int `envconfig:"INGEST_CHUNK_SIZE" default:"1000"`
	ChunkOverlap int `envconfig:"INGEST_CHUNK_OVERLAP" default:"200"`

	Retrieval model.RetrievalConfig
	Postgres  pkgpostgres.Config `ignored:"true"`
}

func main() {
	docsDir := flag.String("docs", "./docs", "directory of .md/.txt documents to ingest")
	reset := flag.Bool("reset", false, "drop existing chunks before ingesting")
	flag.Parse()

	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg IngestConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init()

	cfg.Postgres.URL = cfg.PostgresURL
	if cfg.Postgres.MaxConns == 0 {
		cfg.Postgres.MaxConns = 4
	}
	pool, err := cfg.Postgres.New(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Postgres pool")
	}
	defer pool.Close()

	if err := ensureSchema(ctx, pool, cfg.Retrieval.Dimensions); err != nil {
		logx.Fatal().Err(err).Msg("Failed to prepare schema")
	}
	if *reset {
		if _, err := pool.Exec(ctx, `TRUNCATE document_chunks`); err != nil {
			logx.Fatal().Err(err).Msg("Failed to truncate document_chunks")
		}
		logx.Info().Msg("Existing chunks dropped")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	embedder := rag.NewGeminiEmbedder(client, cfg.Retrieval.EmbeddingModel)

	total, err := ingestDir(ctx, pool, embedder, *docsDir, cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		logx.Fatal().Err(err).Msg("Ingestion failed")
	}
	logx.Info().Int("chunks", total).Str("dir", *docsDir).Msg("Ingestion complete")
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool, dims int) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("create extension: %w", err)
	}
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS document_chunks (
			id          text PRIMARY KEY,
			document_id text NOT NULL,
			text        text NOT NULL,
			embedding   vector(%d) NOT NULL
		)`, dims)
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS document_chunks_embedding_idx
		ON document_chunks USING hnsw (embedding vector_cosine_ops)`); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func ingestDir(ctx context.Context, pool *pgxpool.Pool, embedder rag.Embedder, dir string, size, overlap int) (int, error) {
	total := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".txt" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		docID := filepath.Base(path)
		chunks := rag.SplitText(string(raw), size, overlap)
		for i, text := range chunks {
			embedding, err := embedder.Embed(ctx, text)
			if err != nil {
				return fmt.Errorf("embed %s chunk %d: %w", docID, i, err)
			}
			chunkID := fmt.Sprintf("%s#%04d", docID, i)
			_, err = pool.Exec(ctx, `
				INSERT INTO document_chunks (id, document_id, text, embedding)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (id) DO UPDATE
				SET document_id = EXCLUDED.document_id,
				    text        = EXCLUDED.text,
				    embedding   = EXCLUDED.embedding`,
				chunkID, docID, text, pgvector.NewVector(embedding))
			if err != nil {
				return fmt.Errorf("upsert %s: %w", chunkID, err)
			}
			total++
		}

		logx.Info().Str("document", docID).Int("chunks", len(chunks)).Msg("Document ingested")
		return nil
	})
	return total, err
}
