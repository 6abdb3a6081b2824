// Postgres/pgvector-backed document store.
//
// Information Hiding:
// - Connection pooling and pgvector type registration
// - Schema management for the vectors table
// - Cosine-distance search SQL

package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
)

// embeddingDims matches the text-embedding-3-small output size.
const embeddingDims = 1536

// PostgresStore implements Store backed by Postgres with the pgvector
// extension. Documents are scoped by brain ID so several brains can share
// one vectors table.
type PostgresStore struct {
	pool     *pgxpool.Pool
	embedder Embedder
	brainID  string
	logger   *slog.Logger
}

// NewPostgres connects to Postgres, ensures the pgvector extension and
// the vectors table exist, and returns a store scoped to brainID.
func NewPostgres(ctx context.Context, dsn string, embedder Embedder, brainID string, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	store := &PostgresStore{
		pool:     pool,
		embedder: embedder,
		brainID:  brainID,
		logger:   logger,
	}
	if err := store.createSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) createSchema(ctx context.Context) error {
	schema := fmt.Sprintf(`
		CREATE EXTENSION IF NOT EXISTS vector;

		CREATE TABLE IF NOT EXISTS vectors (
			id TEXT PRIMARY KEY,
			brain_id TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding vector(%d) NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_vectors_brain ON vectors(brain_id);
	`, embeddingDims)

	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Add embeds and upserts documents under this store's brain ID.
func (s *PostgresStore) Add(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}

	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}

	vectors, err := s.embedder.Embed(ctx, contents)
	if err != nil {
		return fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("expected %d embeddings, got %d", len(docs), len(vectors))
	}

	for i, doc := range docs {
		metadataJSON, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata for %q: %w", doc.ID, err)
		}

		_, err = s.pool.Exec(ctx, `
			INSERT INTO vectors (id, brain_id, content, metadata, embedding)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE
			SET content = EXCLUDED.content,
			    metadata = EXCLUDED.metadata,
			    embedding = EXCLUDED.embedding`,
			doc.ID, s.brainID, doc.Content, metadataJSON, pgvector.NewVector(vectors[i]),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert document %q: %w", doc.ID, err)
		}
	}

	s.logger.Debug("added documents", "count", len(docs), "brain_id", s.brainID)
	return nil
}

// Search returns the topK documents closest to the query by cosine distance.
func (s *PostgresStore) Search(ctx context.Context, query string, topK int) ([]Document, error) {
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("empty embedding returned for query")
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, content, metadata
		FROM vectors
		WHERE brain_id = $1
		ORDER BY embedding <=> $2
		LIMIT $3`,
		s.brainID, pgvector.NewVector(vectors[0]), topK,
	)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var doc Document
		var metadataJSON []byte
		if err := rows.Scan(&doc.ID, &doc.Content, &metadataJSON); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &doc.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata for %q: %w", doc.ID, err)
			}
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	s.logger.Debug("similarity search", "brain_id", s.brainID, "top_k", topK, "matches", len(docs))
	return docs, nil
}

// Verify PostgresStore implements Store
var _ Store = (*PostgresStore)(nil)
