// In-memory chat-history storage.
//
// Information Hiding:
// - Map storage structure hidden from users
// - Thread-safe access via RWMutex hidden behind interface
// - Suitable for testing and ephemeral sessions

package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore implements ConversationStore using an in-memory map.
// Data is lost when the process terminates.
type InMemoryStore struct {
	mu    sync.RWMutex
	chats map[string][]Turn
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		chats: make(map[string][]Turn),
	}
}

// History returns all turns for a chat in chronological order.
// Returns empty slice if the chat doesn't exist.
func (s *InMemoryStore) History(ctx context.Context, chatID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.chats[chatID]
	if !ok {
		return []Turn{}, nil
	}

	// Return a copy to avoid external mutations
	copied := make([]Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}

// Append records one exchange at the end of a chat.
func (s *InMemoryStore) Append(ctx context.Context, chatID, userMessage, assistantMessage string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := Turn{
		ID:               uuid.NewString(),
		ChatID:           chatID,
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
		CreatedAt:        time.Now().UTC(),
	}
	s.chats[chatID] = append(s.chats[chatID], turn)
	return turn, nil
}

// Delete removes a chat and all its turns.
func (s *InMemoryStore) Delete(ctx context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.chats, chatID)
	return nil
}

// ListChats lists all chat IDs.
func (s *InMemoryStore) ListChats(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chats := make([]string, 0, len(s.chats))
	for chatID := range s.chats {
		chats = append(chats, chatID)
	}
	return chats, nil
}

// Verify InMemoryStore implements ConversationStore
var _ ConversationStore = (*InMemoryStore)(nil)
