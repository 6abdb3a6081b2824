package vectorstore

import (
	"context"
	"testing"
)

// fakeEmbedder returns fixed vectors per text so similarity is deterministic
// without any network calls.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := f.vectors[text]; ok {
			result[i] = v
		} else {
			result[i] = []float32{0, 0, 1}
		}
	}
	return result, nil
}

func newTestEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float32{
		"all about cats": {1, 0, 0},
		"all about dogs": {0, 1, 0},
		"cats?":          {0.9, 0.1, 0},
		"dogs?":          {0.1, 0.9, 0},
	}}
}

func TestLocalStoreAddAndSearch(t *testing.T) {
	store, err := NewLocal("", newTestEmbedder(), "test-brain", nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ctx := context.Background()
	err = store.Add(ctx,
		Document{ID: "cats", Content: "all about cats"},
		Document{ID: "dogs", Content: "all about dogs"},
	)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	docs, err := store.Search(ctx, "cats?", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].ID != "cats" {
		t.Errorf("expected best match 'cats', got %q", docs[0].ID)
	}
}

func TestLocalStoreSearchEmpty(t *testing.T) {
	store, err := NewLocal("", newTestEmbedder(), "empty-brain", nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	docs, err := store.Search(context.Background(), "anything", 4)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}

func TestLocalStoreTopKClamped(t *testing.T) {
	store, err := NewLocal("", newTestEmbedder(), "small-brain", nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.Add(ctx, Document{ID: "only", Content: "all about cats"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Asking for more results than stored documents must not error.
	docs, err := store.Search(ctx, "cats?", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("expected 1 document, got %d", len(docs))
	}
}

func TestLocalStoreAddNothing(t *testing.T) {
	store, err := NewLocal("", newTestEmbedder(), "noop-brain", nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Add(context.Background()); err != nil {
		t.Errorf("Add with no documents should be a no-op, got %v", err)
	}
}
