// Package llm provides shared data models for LLM providers.
package llm

// Message roles used in completion requests.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a chat message with role and content.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolCall represents a tool invocation requested by the model.
// Arguments is the raw serialized payload exactly as the provider returned
// it; its shape is the tool's contract and is not interpreted here.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDefinition describes a tool offered to the model for a completion call.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// TokenUsage tracks token consumption for a completion call.
type TokenUsage struct {
	PromptTokens     uint32
	CompletionTokens uint32
	TotalTokens      uint32
}

// LLMResponse is a single completion result: assistant text plus any tool
// calls the model emitted. Content and ToolCalls are not mutually exclusive;
// a model may return trailing text alongside a tool call.
type LLMResponse struct {
	Content   string
	ToolCalls []ToolCall
	Usage     *TokenUsage
}

// ToolCall returns the first tool call in the response, or nil if the model
// answered with content only.
func (r LLMResponse) ToolCall() *ToolCall {
	if len(r.ToolCalls) == 0 {
		return nil
	}
	return &r.ToolCalls[0]
}
