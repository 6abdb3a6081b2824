// Package storage provides chat-history persistence.
//
// Information Hiding:
// - Storage backend implementation details hidden behind interface
// - Allows swapping between memory and SQLite without API changes
// - Each implementation encapsulates its own data structures and schema

package storage

import (
	"context"
	"time"
)

// Turn is one completed question/answer exchange in a chat.
// Turns are append-only: created once per answered question, never mutated.
type Turn struct {
	ID               string
	ChatID           string
	UserMessage      string
	AssistantMessage string
	CreatedAt        time.Time
}

// ConversationStore defines the interface for chat-history persistence.
// Implementations can use different backends (memory, database).
type ConversationStore interface {
	// History returns all turns for a chat in chronological order.
	// Returns empty slice (not nil) if the chat doesn't exist.
	// Returns error only for storage failures, not missing chats.
	History(ctx context.Context, chatID string) ([]Turn, error)

	// Append records one completed exchange at the end of a chat and
	// returns the persisted turn. The chat is created if absent.
	Append(ctx context.Context, chatID, userMessage, assistantMessage string) (Turn, error)

	// Delete removes a chat and all its turns.
	Delete(ctx context.Context, chatID string) error

	// ListChats lists all chat IDs.
	ListChats(ctx context.Context) ([]string, error)
}
