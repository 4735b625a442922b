package rag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// Index is the stable lookup contract against the persisted vector index:
// nearest-neighbor search over a query embedding. Results are ordered by
// descending similarity with ties broken by ascending chunk id.
type Index interface {
	Search(ctx context.Context, embedding []float32, k int) ([]Match, error)
}

// PostgresIndex reads document chunks from a pgvector-backed table. The table
// is owned by the ingestion job; the serving path is read-only.
type PostgresIndex struct {
	pool *pgxpool.Pool
}

func NewPostgresIndex(pool *pgxpool.Pool) *PostgresIndex {
	return &PostgresIndex{pool: pool}
}

// Search runs a cosine nearest-neighbor query. pgvector's <=> operator is
// cosine distance, so similarity = 1 - distance. Ordering by (distance, id)
// keeps equal-distance results deterministic.
func (i *PostgresIndex) Search(ctx context.Context, embedding []float32, k int) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}

	const q = `
		SELECT id, document_id, text, 1 - (embedding <=> $1) AS score
		FROM document_chunks
		ORDER BY embedding <=> $1, id ASC
		LIMIT $2`

	rows, err := i.pool.Query(ctx, q, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ChunkID, &m.SourceID, &m.Text, &m.Score); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vector search rows: %w", err)
	}
	return matches, nil
}

// Count reports the number of indexed chunks.
func (i *PostgresIndex) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := i.pool.QueryRow(ctx, `SELECT count(*) FROM document_chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}
