package llm

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestResponseToolCallEmpty(t *testing.T) {
	resp := LLMResponse{Content: "4"}
	if resp.ToolCall() != nil {
		t.Error("expected nil tool call for content-only response")
	}
}

func TestResponseToolCallFirst(t *testing.T) {
	resp := LLMResponse{
		ToolCalls: []ToolCall{
			{Name: "get_history_and_context", Arguments: "{}"},
			{Name: "second", Arguments: "{}"},
		},
	}
	tc := resp.ToolCall()
	if tc == nil {
		t.Fatal("expected a tool call")
	}
	if tc.Name != "get_history_and_context" {
		t.Errorf("expected first tool call, got %q", tc.Name)
	}
}

func TestConvertToOpenAIMessages(t *testing.T) {
	messages := []ChatMessage{
		{Role: RoleSystem, Content: "persona"},
		{Role: RoleUser, Content: "question"},
	}

	converted := convertToOpenAIMessages(messages)
	if len(converted) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(converted))
	}
	if converted[0].Role != "system" || converted[0].Content != "persona" {
		t.Errorf("unexpected first message: %+v", converted[0])
	}
	if converted[1].Role != "user" || converted[1].Content != "question" {
		t.Errorf("unexpected second message: %+v", converted[1])
	}
}

func TestConvertToOpenAITools(t *testing.T) {
	tools := []ToolDefinition{
		{
			Name:        "get_history_and_context",
			Description: "fetch history and documents",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		},
	}

	converted := convertToOpenAITools(tools)
	if len(converted) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(converted))
	}
	if converted[0].Type != openai.ToolTypeFunction {
		t.Errorf("expected function tool type, got %v", converted[0].Type)
	}
	if converted[0].Function.Name != "get_history_and_context" {
		t.Errorf("unexpected tool name: %q", converted[0].Function.Name)
	}
}

func TestConvertToAnthropicMessagesExtractsSystem(t *testing.T) {
	messages := []ChatMessage{
		{Role: RoleSystem, Content: "persona"},
		{Role: RoleSystem, Content: "history follows"},
		{Role: RoleUser, Content: "question"},
		{Role: RoleAssistant, Content: "answer"},
	}

	converted, system := convertToAnthropicMessages(messages)
	if system != "persona\n\nhistory follows" {
		t.Errorf("unexpected system prompt: %q", system)
	}
	if len(converted) != 2 {
		t.Errorf("expected 2 non-system messages, got %d", len(converted))
	}
}

func TestConvertToGeminiToolsEmpty(t *testing.T) {
	if convertToGeminiTools(nil) != nil {
		t.Error("expected nil tools for empty definitions")
	}
}

func TestParseProviderType(t *testing.T) {
	cases := map[string]ProviderType{
		"openai":    ProviderOpenAI,
		"GPT":       ProviderOpenAI,
		"claude":    ProviderAnthropic,
		"anthropic": ProviderAnthropic,
		"google":    ProviderGemini,
		"gemini":    ProviderGemini,
	}
	for input, want := range cases {
		got, err := ParseProviderType(input)
		if err != nil {
			t.Errorf("ParseProviderType(%q) returned error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseProviderType(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseProviderType("llama"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestBuilderDefaults(t *testing.T) {
	provider, err := ProviderOpenAI.APIKey("sk-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("expected openai, got %q", provider.Name())
	}
	if provider.Model() != ModelOpenAIGPT4o {
		t.Errorf("expected default model %q, got %q", ModelOpenAIGPT4o, provider.Model())
	}
}

func TestBuilderCustomModel(t *testing.T) {
	provider, err := ProviderAnthropic.Model(ModelAnthropicClaudeHaiku4).APIKey("sk-ant-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Model() != ModelAnthropicClaudeHaiku4 {
		t.Errorf("expected %q, got %q", ModelAnthropicClaudeHaiku4, provider.Model())
	}
}
