// SQLite-backed chat-history storage.
//
// Information Hiding:
// - SQLite connection management hidden behind interface
// - Schema and migration details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore implements ConversationStore using a SQLite database file.
// Thread-safe: sql.DB handles connection pooling and concurrent access.
type SqliteStore struct {
	db *sql.DB
}

// OpenSqlite opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func OpenSqlite(path string) (*SqliteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// NewSqliteInMemory creates an in-memory database (useful for testing).
func NewSqliteInMemory() (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS chats (
			chat_id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS turns (
			id TEXT PRIMARY KEY,
			chat_id TEXT NOT NULL,
			turn_index INTEGER NOT NULL,
			user_message TEXT NOT NULL,
			assistant_message TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (chat_id) REFERENCES chats(chat_id) ON DELETE CASCADE,
			UNIQUE(chat_id, turn_index)
		);

		CREATE INDEX IF NOT EXISTS idx_turns_chat
		ON turns(chat_id, turn_index);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SqliteStore) ensureChat(ctx context.Context, tx *sql.Tx, chatID string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO chats (chat_id) VALUES (?)",
		chatID,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure chat: %w", err)
	}
	return nil
}

// History returns all turns for a chat in chronological order.
// Returns empty slice if the chat doesn't exist.
func (s *SqliteStore) History(ctx context.Context, chatID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_message, assistant_message, created_at FROM turns WHERE chat_id = ? ORDER BY turn_index ASC",
		chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	turns := []Turn{} // Start with empty slice, not nil
	for rows.Next() {
		var turn Turn
		var createdAt int64
		if err := rows.Scan(&turn.ID, &turn.UserMessage, &turn.AssistantMessage, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turn.ChatID = chatID
		turn.CreatedAt = time.Unix(createdAt, 0).UTC()
		turns = append(turns, turn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating turns: %w", err)
	}

	return turns, nil
}

// Append records one exchange at the end of a chat.
func (s *SqliteStore) Append(ctx context.Context, chatID, userMessage, assistantMessage string) (Turn, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Turn{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op after Commit
	defer func() { _ = tx.Rollback() }()

	if err := s.ensureChat(ctx, tx, chatID); err != nil {
		return Turn{}, err
	}

	turn := Turn{
		ID:               uuid.NewString(),
		ChatID:           chatID,
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
		CreatedAt:        time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO turns (id, chat_id, turn_index, user_message, assistant_message, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(turn_index) + 1, 0) FROM turns WHERE chat_id = ?), ?, ?, ?)`,
		turn.ID, chatID, chatID, userMessage, assistantMessage, turn.CreatedAt.Unix(),
	)
	if err != nil {
		return Turn{}, fmt.Errorf("failed to insert turn: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE chats SET updated_at = datetime('now') WHERE chat_id = ?",
		chatID)
	if err != nil {
		return Turn{}, fmt.Errorf("failed to update chat timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Turn{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return turn, nil
}

// Delete removes a chat and all its turns.
func (s *SqliteStore) Delete(ctx context.Context, chatID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Foreign keys are off by default in SQLite; delete turns explicitly.
	if _, err := tx.ExecContext(ctx, "DELETE FROM turns WHERE chat_id = ?", chatID); err != nil {
		return fmt.Errorf("failed to delete turns: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM chats WHERE chat_id = ?", chatID); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListChats lists all chat IDs, most recently updated first.
func (s *SqliteStore) ListChats(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT chat_id FROM chats ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	chats := []string{} // Start with empty slice, not nil
	for rows.Next() {
		var chatID string
		if err := rows.Scan(&chatID); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, chatID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chats: %w", err)
	}

	return chats, nil
}

// Verify SqliteStore implements ConversationStore
var _ ConversationStore = (*SqliteStore)(nil)
