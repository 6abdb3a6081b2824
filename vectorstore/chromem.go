// Embedded document store backed by chromem-go.
//
// Information Hiding:
// - Collection naming and persistence layout
// - Bridging our Embedder to chromem's EmbeddingFunc

package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	chromem "github.com/philippgille/chromem-go"
)

// LocalStore implements Store using chromem-go, an in-process vector
// database. Suitable for local use and tests; no external services needed.
type LocalStore struct {
	collection *chromem.Collection
	logger     *slog.Logger
}

// NewLocal creates a store persisted under path, scoped to brainID.
// An empty path keeps everything in memory.
func NewLocal(path string, embedder Embedder, brainID string, logger *slog.Logger) (*LocalStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var db *chromem.DB
	if path == "" {
		db = chromem.NewDB()
	} else {
		var err error
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open local vector store: %w", err)
		}
	}

	collection, err := db.GetOrCreateCollection("brain-"+brainID, nil, newEmbeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("failed to open collection for brain %q: %w", brainID, err)
	}

	return &LocalStore{collection: collection, logger: logger}, nil
}

// newEmbeddingFunc bridges our batch Embedder to chromem's per-text
// EmbeddingFunc. chromem normalizes vectors itself.
func newEmbeddingFunc(embedder Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := embedder.Embed(ctx, []string{text})
		if err != nil {
			return nil, fmt.Errorf("embed failed: %w", err)
		}
		if len(vectors) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}
		return vectors[0], nil
	}
}

// Add embeds and upserts documents.
func (s *LocalStore) Add(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromemDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: doc.Metadata,
		}
	}

	if err := s.collection.AddDocuments(ctx, chromemDocs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}

	s.logger.Debug("added documents", "count", len(docs))
	return nil
}

// Search returns the topK documents most similar to the query.
func (s *LocalStore) Search(ctx context.Context, query string, topK int) ([]Document, error) {
	// chromem rejects queries asking for more results than stored documents
	count := s.collection.Count()
	if count == 0 {
		return []Document{}, nil
	}
	if topK > count {
		topK = count
	}

	results, err := s.collection.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	docs := make([]Document, len(results))
	for i, r := range results {
		docs[i] = Document{
			ID:       r.ID,
			Content:  r.Content,
			Metadata: r.Metadata,
		}
	}

	s.logger.Debug("similarity search", "top_k", topK, "matches", len(docs))
	return docs, nil
}

// Verify LocalStore implements Store
var _ Store = (*LocalStore)(nil)
