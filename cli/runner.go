// Command execution for CLI commands.
//
// Information Hiding:
// - Collaborator wiring (provider, stores, retriever) hidden
// - Output formatting hidden

package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/maxsmart-ai/maxsmart/brain"
	"github.com/maxsmart-ai/maxsmart/config"
	"github.com/maxsmart-ai/maxsmart/llm"
	"github.com/maxsmart-ai/maxsmart/storage"
	"github.com/maxsmart-ai/maxsmart/vectorstore"
)

// Options holds CLI execution options.
type Options struct {
	Provider string
	ChatID   string
	Verbose  bool
}

// DefaultOptions returns default CLI options.
func DefaultOptions() Options {
	return Options{
		Provider: "openai",
	}
}

// Ask answers a single question and prints the answer.
func Ask(ctx context.Context, question string, opts Options) error {
	b, cleanup, err := buildBrain(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	turn, err := b.GenerateAnswer(ctx, question)
	if err != nil {
		return fmt.Errorf("answer generation failed: %w", err)
	}

	fmt.Println(turn.AssistantMessage)
	return nil
}

// Chat starts an interactive session reusing one chat ID across turns.
func Chat(ctx context.Context, opts Options) error {
	if opts.ChatID == "" {
		opts.ChatID = uuid.NewString()
	}

	b, cleanup, err := buildBrain(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("Chat %s - type 'exit' to quit\n", opts.ChatID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		turn, err := b.GenerateAnswer(ctx, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Printf("\n%s\n\n", turn.AssistantMessage)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// Ingest chunks files and adds them to the brain's document store.
func Ingest(ctx context.Context, paths []string, opts Options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	logger := newLogger(opts.Verbose)

	store, closeStore, err := newVectorStore(ctx, settings, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		chunks := chunkText(string(data))
		docs := make([]vectorstore.Document, len(chunks))
		for i, chunk := range chunks {
			docs[i] = vectorstore.Document{
				ID:       uuid.NewString(),
				Content:  chunk,
				Metadata: map[string]string{"source": path},
			}
		}

		if err := store.Add(ctx, docs...); err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		fmt.Printf("Ingested %s (%d chunks)\n", path, len(chunks))
	}

	return nil
}

// ListChats prints all chat IDs.
func ListChats(ctx context.Context, opts Options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	conversations, err := storage.OpenSqlite(settings.Store.ChatDBPath)
	if err != nil {
		return err
	}
	defer conversations.Close()

	chats, err := conversations.ListChats(ctx)
	if err != nil {
		return err
	}
	if len(chats) == 0 {
		fmt.Println("No chats.")
		return nil
	}
	for _, chatID := range chats {
		fmt.Println(chatID)
	}
	return nil
}

// DeleteChat removes a chat and its history.
func DeleteChat(ctx context.Context, chatID string, opts Options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	conversations, err := storage.OpenSqlite(settings.Store.ChatDBPath)
	if err != nil {
		return err
	}
	defer conversations.Close()

	if err := conversations.Delete(ctx, chatID); err != nil {
		return err
	}
	fmt.Printf("Deleted chat %s\n", chatID)
	return nil
}

func loadSettings(opts Options) (config.Settings, error) {
	provider := opts.Provider
	if provider == "" {
		provider = "openai"
	}
	return config.New(provider)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildBrain wires a Brain from settings: provider, chat history store,
// vector store and retriever. The returned cleanup closes both stores.
func buildBrain(ctx context.Context, opts Options) (*brain.Brain, func(), error) {
	settings, err := loadSettings(opts)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(opts.Verbose)

	provider, err := createProvider(settings)
	if err != nil {
		return nil, nil, err
	}

	conversations, err := storage.OpenSqlite(settings.Store.ChatDBPath)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := newVectorStore(ctx, settings, logger)
	if err != nil {
		conversations.Close()
		return nil, nil, err
	}

	retriever := vectorstore.NewRetriever(store, settings.Brain.RetrievalTopK, logger)

	chatID := opts.ChatID
	if chatID == "" {
		chatID = "default"
	}

	b := brain.New(provider, conversations, retriever, brain.Options{
		ChatID: chatID,
		Logger: logger,
	})

	cleanup := func() {
		closeStore()
		conversations.Close()
	}
	return b, cleanup, nil
}

func createProvider(settings config.Settings) (llm.Provider, error) {
	providerType, err := llm.ParseProviderType(settings.LLM.Provider)
	if err != nil {
		return nil, err
	}

	apiKey, err := config.APIKeyFor(settings.LLM.Provider)
	if err != nil {
		return nil, err
	}

	return llm.NewProviderBuilder(providerType).
		Model(settings.LLM.Model).
		MaxTokens(settings.LLM.MaxTokens).
		Temperature(float32(settings.LLM.Temperature)).
		APIKey(apiKey)
}

// newVectorStore builds the configured document store. Embeddings always
// come from OpenAI, so OPENAI_API_KEY is required regardless of the chat
// provider.
func newVectorStore(ctx context.Context, settings config.Settings, logger *slog.Logger) (vectorstore.Store, func(), error) {
	embeddingKey, err := config.APIKeyFor("openai")
	if err != nil {
		return nil, nil, fmt.Errorf("embeddings require an OpenAI key: %w", err)
	}
	embedder := llm.NewOpenAIEmbedder(embeddingKey, settings.LLM.EmbeddingModel)

	switch settings.Store.VectorBackend {
	case config.VectorBackendPostgres:
		store, err := vectorstore.NewPostgres(ctx, settings.Store.DatabaseURL, embedder, settings.Brain.BrainID, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.VectorBackendLocal:
		store, err := vectorstore.NewLocal(settings.Store.VectorPath, embedder, settings.Brain.BrainID, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown vector backend: %q", settings.Store.VectorBackend)
	}
}
