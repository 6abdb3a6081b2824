// Package prompt assembles the ordered message sequence for a completion call.
//
// Assembly is pure: history and retrieved context are passed in by the
// caller, never fetched here, so the same inputs always produce the same
// message sequence.
package prompt

import (
	"github.com/maxsmart-ai/maxsmart/llm"
	"github.com/maxsmart-ai/maxsmart/storage"
)

// SystemPrompt establishes the assistant persona. It instructs the model to
// answer from provided context and to say "I don't know" rather than fabricate.
const SystemPrompt = `Your name is Max Smart, you are a super intelligent AI designed to act as a second brain and augment the user's intellect with your unparalleled information processing and retrieval skills. Your job is to assist the user, provide helpful answers to user questions, and offer analysis or recommendations on request. If you don't know the answer to a user question, simply say I don't know rather than make up an answer. Use the following context to answer the question:`

// historyMarker precedes replayed history so the model knows the following
// turns are prior conversation, not fresh input.
const historyMarker = "Previous messages are already in chat."

const (
	contextPrefix   = "Here are the documents you have access to: "
	contextFallback = "No document found"
)

// Options controls which optional sections are included in the prompt.
type Options struct {
	// History holds prior turns, expanded in chronological order when
	// IncludeHistory is set.
	History []storage.Turn

	// Context is retrieved document text, embedded verbatim when
	// IncludeContext is set. Empty context renders the fallback literal.
	Context string

	IncludeHistory bool
	IncludeContext bool
}

// Build constructs the message sequence for a completion call:
// the fixed system message, then optionally replayed history, then
// optionally retrieved context, then the question itself.
func Build(question string, opts Options) []llm.ChatMessage {
	messages := []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: SystemPrompt},
	}

	if opts.IncludeHistory {
		messages = append(messages, llm.ChatMessage{
			Role:    llm.RoleSystem,
			Content: historyMarker,
		})
		for _, turn := range opts.History {
			messages = append(messages,
				llm.ChatMessage{Role: llm.RoleUser, Content: turn.UserMessage},
				llm.ChatMessage{Role: llm.RoleAssistant, Content: turn.AssistantMessage},
			)
		}
	}

	if opts.IncludeContext {
		context := opts.Context
		if context == "" {
			context = contextFallback
		}
		messages = append(messages, llm.ChatMessage{
			Role:    llm.RoleUser,
			Content: contextPrefix + context,
		})
	}

	messages = append(messages, llm.ChatMessage{
		Role:    llm.RoleUser,
		Content: question,
	})

	return messages
}
