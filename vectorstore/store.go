// Package vectorstore provides document storage with similarity search.
//
// Information Hiding:
// - Embedding generation and vector indexing hidden behind interface
// - Allows swapping between Postgres/pgvector and an embedded store
//   without API changes

package vectorstore

import (
	"context"
)

// Document is a unit of retrievable text, scoped to a brain.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Embedder turns texts into embedding vectors. Defined here, by the
// consumer; llm.OpenAIEmbedder satisfies it.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Store defines the interface for document storage with similarity search.
type Store interface {
	// Add embeds and upserts documents.
	Add(ctx context.Context, docs ...Document) error

	// Search returns up to topK documents most similar to the query,
	// best match first. Returns empty slice when the store holds nothing.
	Search(ctx context.Context, query string, topK int) ([]Document, error)
}
