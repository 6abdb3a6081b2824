package storage

import (
	"context"
	"testing"
)

func TestInMemoryAppendAndHistory(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	if _, err := store.Append(ctx, "chat-1", "Hello", "Hi"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := store.Append(ctx, "chat-1", "Bye", "Goodbye"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	history, err := store.History(ctx, "chat-1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(history))
	}
	if history[0].UserMessage != "Hello" || history[1].UserMessage != "Bye" {
		t.Errorf("turns out of order: %+v", history)
	}
}

func TestInMemoryHistoryReturnsCopy(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	if _, err := store.Append(ctx, "chat-1", "original", "answer"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	history, _ := store.History(ctx, "chat-1")
	history[0].UserMessage = "mutated"

	fresh, _ := store.History(ctx, "chat-1")
	if fresh[0].UserMessage != "original" {
		t.Error("History returned a reference to internal state")
	}
}

func TestInMemoryHistoryNonexistentChat(t *testing.T) {
	store := NewInMemoryStore()

	history, err := store.History(context.Background(), "missing")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", history)
	}
}

func TestInMemoryDelete(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	if _, err := store.Append(ctx, "chat-1", "q", "a"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Delete(ctx, "chat-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	chats, err := store.ListChats(ctx)
	if err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if len(chats) != 0 {
		t.Errorf("expected no chats, got %d", len(chats))
	}
}
