// Question-to-context retrieval on top of a Store.

package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultTopK is the number of documents retrieved per question when the
// caller doesn't configure one.
const DefaultTopK = 4

// Retriever turns a question into a textual document context by similarity
// search. Retrieval errors propagate to the caller; an empty result is not
// an error and yields an empty string (the prompt layer owns the fallback
// wording).
type Retriever struct {
	store  Store
	topK   int
	logger *slog.Logger
}

// NewRetriever creates a retriever over the given store.
// topK <= 0 selects DefaultTopK.
func NewRetriever(store Store, topK int, logger *slog.Logger) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{store: store, topK: topK, logger: logger}
}

// Retrieve returns the contents of the documents most similar to the
// question, joined by blank lines, best match first.
func (r *Retriever) Retrieve(ctx context.Context, question string) (string, error) {
	docs, err := r.store.Search(ctx, question, r.topK)
	if err != nil {
		return "", fmt.Errorf("context retrieval failed: %w", err)
	}

	if len(docs) == 0 {
		r.logger.Debug("no documents found", "question_length", len(question))
		return "", nil
	}

	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}
	return strings.Join(contents, "\n\n"), nil
}
