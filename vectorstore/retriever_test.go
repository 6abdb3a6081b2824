package vectorstore

import (
	"context"
	"errors"
	"testing"
)

// stubStore returns canned documents or a canned error.
type stubStore struct {
	docs     []Document
	err      error
	lastTopK int
}

func (s *stubStore) Add(ctx context.Context, docs ...Document) error { return nil }

func (s *stubStore) Search(ctx context.Context, query string, topK int) ([]Document, error) {
	s.lastTopK = topK
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func TestRetrieverJoinsDocuments(t *testing.T) {
	store := &stubStore{docs: []Document{
		{ID: "a", Content: "first snippet"},
		{ID: "b", Content: "second snippet"},
	}}
	retriever := NewRetriever(store, 2, nil)

	got, err := retriever.Retrieve(context.Background(), "question")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	want := "first snippet\n\nsecond snippet"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRetrieverEmptyResult(t *testing.T) {
	retriever := NewRetriever(&stubStore{}, 4, nil)

	result, err := retriever.Retrieve(context.Background(), "question")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if result != "" {
		t.Errorf("expected empty string for no documents, got %q", result)
	}
}

func TestRetrieverPropagatesError(t *testing.T) {
	searchErr := errors.New("connection refused")
	retriever := NewRetriever(&stubStore{err: searchErr}, 4, nil)

	_, err := retriever.Retrieve(context.Background(), "question")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, searchErr) {
		t.Errorf("expected wrapped search error, got %v", err)
	}
}

func TestRetrieverDefaultTopK(t *testing.T) {
	store := &stubStore{}
	retriever := NewRetriever(store, 0, nil)

	if _, err := retriever.Retrieve(context.Background(), "q"); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if store.lastTopK != DefaultTopK {
		t.Errorf("expected default topK %d, got %d", DefaultTopK, store.lastTopK)
	}
}
