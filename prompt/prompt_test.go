package prompt

import (
	"reflect"
	"testing"

	"github.com/maxsmart-ai/maxsmart/llm"
	"github.com/maxsmart-ai/maxsmart/storage"
)

func TestBuildBareQuestion(t *testing.T) {
	messages := Build("What is 2+2?", Options{})

	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != llm.RoleSystem || messages[0].Content != SystemPrompt {
		t.Errorf("unexpected system message: %+v", messages[0])
	}
	if messages[1].Role != llm.RoleUser || messages[1].Content != "What is 2+2?" {
		t.Errorf("unexpected question message: %+v", messages[1])
	}
}

func TestBuildWithHistory(t *testing.T) {
	history := []storage.Turn{
		{UserMessage: "Who wrote Dune?", AssistantMessage: "Frank Herbert."},
		{UserMessage: "When?", AssistantMessage: "1965."},
		{UserMessage: "Any sequels?", AssistantMessage: "Five by Herbert himself."},
	}

	messages := Build("Which should I read first?", Options{
		History:        history,
		IncludeHistory: true,
	})

	// system prompt + marker + 2N history + question
	want := 2 + 2*len(history) + 1
	if len(messages) != want {
		t.Fatalf("expected %d messages, got %d", want, len(messages))
	}

	if messages[1].Role != llm.RoleSystem || messages[1].Content != "Previous messages are already in chat." {
		t.Errorf("unexpected history marker: %+v", messages[1])
	}

	for i, turn := range history {
		userMsg := messages[2+2*i]
		assistantMsg := messages[3+2*i]
		if userMsg.Role != llm.RoleUser || userMsg.Content != turn.UserMessage {
			t.Errorf("history turn %d user message wrong: %+v", i, userMsg)
		}
		if assistantMsg.Role != llm.RoleAssistant || assistantMsg.Content != turn.AssistantMessage {
			t.Errorf("history turn %d assistant message wrong: %+v", i, assistantMsg)
		}
	}
}

func TestBuildWithContext(t *testing.T) {
	messages := Build("What does the handbook say?", Options{
		Context:        "Chapter 3: all leave requests go through the portal.",
		IncludeContext: true,
	})

	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	contextMsg := messages[1]
	if contextMsg.Role != llm.RoleUser {
		t.Errorf("expected user role for context message, got %q", contextMsg.Role)
	}
	want := "Here are the documents you have access to: Chapter 3: all leave requests go through the portal."
	if contextMsg.Content != want {
		t.Errorf("expected %q, got %q", want, contextMsg.Content)
	}
}

func TestBuildEmptyContextFallback(t *testing.T) {
	messages := Build("Anything?", Options{IncludeContext: true})

	contextMsg := messages[1]
	want := "Here are the documents you have access to: No document found"
	if contextMsg.Content != want {
		t.Errorf("expected fallback literal %q, got %q", want, contextMsg.Content)
	}
}

func TestBuildHistoryAndContextOrdering(t *testing.T) {
	messages := Build("q", Options{
		History:        []storage.Turn{{UserMessage: "u", AssistantMessage: "a"}},
		Context:        "doc",
		IncludeHistory: true,
		IncludeContext: true,
	})

	roles := make([]string, len(messages))
	for i, m := range messages {
		roles[i] = m.Role
	}
	want := []string{
		llm.RoleSystem,    // persona
		llm.RoleSystem,    // history marker
		llm.RoleUser,      // history user
		llm.RoleAssistant, // history assistant
		llm.RoleUser,      // context
		llm.RoleUser,      // question
	}
	if !reflect.DeepEqual(roles, want) {
		t.Errorf("unexpected role ordering: %v", roles)
	}
	if messages[len(messages)-1].Content != "q" {
		t.Errorf("question must be the final message, got %q", messages[len(messages)-1].Content)
	}
}

func TestBuildDeterministic(t *testing.T) {
	opts := Options{
		History:        []storage.Turn{{UserMessage: "u", AssistantMessage: "a"}},
		Context:        "doc",
		IncludeHistory: true,
		IncludeContext: true,
	}
	first := Build("q", opts)
	second := Build("q", opts)
	if !reflect.DeepEqual(first, second) {
		t.Error("Build is not deterministic for identical inputs")
	}
}
