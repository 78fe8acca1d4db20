package llm

import "context"

// Message roles used on the chat completions wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a message in a conversation. A tool message carries
// the ToolCallID of the assistant tool call it answers; an assistant
// message may carry tool calls instead of content.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a model-issued request to invoke one named tool.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tool describes one entry of the tool catalog sent with a completion
// request.
type Tool struct {
	Type     string      `json:"type"`
	Function FunctionDef `json:"function"`
}

// FunctionDef is the JSON-schema description of a callable function.
type FunctionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Provider is the completion capability consumed by the orchestrator and
// the synthesizer. Implementations must honor ctx cancellation.
type Provider interface {
	// ChatCompletion sends the full message list plus an optional tool
	// catalog and returns the assistant message, which may carry tool calls.
	ChatCompletion(ctx context.Context, messages []Message, tools []Tool, toolChoice string) (Message, error)
}
