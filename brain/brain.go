// Package brain orchestrates question answering against an LLM.
//
// A question is answered through a bounded two-step negotiation: the first
// completion call offers a single tool the model may invoke to signal that
// it needs prior conversation and retrieved documents; if it does, one
// richer completion call is made with that material inlined and no tools
// offered. There is no loop beyond that single escalation, and the answered
// turn is persisted exactly once per question.
//
// Information Hiding:
// - Escalation classification and the tool manifest
// - Prompt enrichment (history load, context retrieval)
// - The single persistence commit point

package brain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maxsmart-ai/maxsmart/llm"
	"github.com/maxsmart-ai/maxsmart/prompt"
	"github.com/maxsmart-ai/maxsmart/storage"
)

// Tool names the model may invoke on the first completion call.
const (
	// ToolGetHistoryAndContext asks for prior turns and retrieved documents.
	// This is the only tool actually offered in the manifest.
	ToolGetHistoryAndContext = "get_history_and_context"

	// ToolGetHistory asks for prior turns only. Not offered in the manifest,
	// but classified explicitly so a model that emits it anyway gets the
	// history-only escalation instead of silently falling through.
	ToolGetHistory = "get_history"
)

// ContextRetriever turns a question into a textual document context.
// vectorstore.Retriever satisfies it.
type ContextRetriever interface {
	Retrieve(ctx context.Context, question string) (string, error)
}

// escalation is the closed set of outcomes of classifying the first
// completion call's tool invocation.
type escalation int

const (
	// escalationNone: the model answered directly.
	escalationNone escalation = iota
	// escalationHistory: the model asked for conversation history only.
	escalationHistory
	// escalationBoth: the model asked for history and retrieved documents.
	escalationBoth
	// escalationUnknown: the model invoked a name outside the manifest.
	// Treated as final with whatever content was returned.
	escalationUnknown
)

func (e escalation) String() string {
	switch e {
	case escalationNone:
		return "none"
	case escalationHistory:
		return "history"
	case escalationBoth:
		return "history_and_context"
	case escalationUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// classify maps a tool call (or its absence) to an escalation.
func classify(call *llm.ToolCall) escalation {
	if call == nil {
		return escalationNone
	}
	switch call.Name {
	case ToolGetHistory:
		return escalationHistory
	case ToolGetHistoryAndContext:
		return escalationBoth
	default:
		return escalationUnknown
	}
}

// manifest returns the tool set offered on the first completion call:
// a single combined history-and-context tool with an empty parameter schema.
func manifest() []llm.ToolDefinition {
	return []llm.ToolDefinition{
		{
			Name:        ToolGetHistoryAndContext,
			Description: "Get the chat history between you and the user and also get the relevant documents to answer the question. Always use that unless a very simple question is asked that a 5 years old could answer.",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		},
	}
}

// Options configures a Brain.
type Options struct {
	// ChatID identifies the conversation whose history is loaded and
	// appended to.
	ChatID string

	// Logger for negotiation steps; nil uses slog.Default().
	Logger *slog.Logger
}

// Brain answers questions for one chat. All collaborators are injected at
// construction; Brain holds no hidden clients or global state.
type Brain struct {
	provider      llm.Provider
	conversations storage.ConversationStore
	retriever     ContextRetriever
	chatID        string
	logger        *slog.Logger
}

// New creates a Brain from already-constructed collaborators.
func New(provider llm.Provider, conversations storage.ConversationStore, retriever ContextRetriever, opts Options) *Brain {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Brain{
		provider:      provider,
		conversations: conversations,
		retriever:     retriever,
		chatID:        opts.ChatID,
		logger:        logger,
	}
}

// GenerateAnswer answers a question and persists the completed turn.
//
// At most two completion calls are made: the first offers the single-tool
// manifest; if the model invokes a known tool, the second call repeats the
// question with history (and, for the combined tool, retrieved documents)
// inlined and no tools offered. Any collaborator failure aborts the whole
// negotiation with nothing persisted. On success exactly one turn is
// appended to the chat, with the final content as the assistant message.
func (b *Brain) GenerateAnswer(ctx context.Context, question string) (storage.Turn, error) {
	b.logger.Debug("generating answer", "chat_id", b.chatID)

	response, err := b.provider.ChatWithTools(ctx, prompt.Build(question, prompt.Options{}), manifest())
	if err != nil {
		return storage.Turn{}, fmt.Errorf("initial completion failed: %w", err)
	}

	step := classify(response.ToolCall())
	b.logger.Debug("negotiation classified", "escalation", step.String())

	switch step {
	case escalationHistory:
		response, err = b.escalate(ctx, question, false)
	case escalationBoth:
		response, err = b.escalate(ctx, question, true)
	case escalationNone, escalationUnknown:
		// Final as-is. An unknown invocation is ignored: manifests constrain
		// model output but are not assumed bullet-proof.
	}
	if err != nil {
		return storage.Turn{}, err
	}

	turn, err := b.conversations.Append(ctx, b.chatID, question, response.Content)
	if err != nil {
		return storage.Turn{}, fmt.Errorf("failed to persist turn: %w", err)
	}

	b.logger.Info("answer generated", "chat_id", b.chatID, "turn_id", turn.ID, "escalation", step.String())
	return turn, nil
}

// escalate re-issues the completion with history (and optionally retrieved
// context) inlined. No tools are offered, so the model cannot negotiate
// again.
func (b *Brain) escalate(ctx context.Context, question string, withContext bool) (llm.LLMResponse, error) {
	history, err := b.conversations.History(ctx, b.chatID)
	if err != nil {
		return llm.LLMResponse{}, fmt.Errorf("failed to load chat history: %w", err)
	}

	opts := prompt.Options{
		History:        history,
		IncludeHistory: true,
	}

	if withContext {
		docContext, err := b.retriever.Retrieve(ctx, question)
		if err != nil {
			return llm.LLMResponse{}, err
		}
		opts.Context = docContext
		opts.IncludeContext = true
	}

	response, err := b.provider.Chat(ctx, prompt.Build(question, opts))
	if err != nil {
		return llm.LLMResponse{}, fmt.Errorf("escalated completion failed: %w", err)
	}
	return response, nil
}
