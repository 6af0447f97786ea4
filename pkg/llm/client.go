// Package llm provides chat-completion clients with tool calling, used by
// the benchmark harness to drive language models against the data space
// tool surface. The base implementation talks to the OpenAI API (or any
// OpenAI-compatible service); decorators add retries and circuit breaking.
package llm

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role
	Content string

	// ToolCallID links a RoleTool message to the assistant tool call it
	// answers.
	ToolCallID string

	// ToolCalls carries the tool invocations requested by an assistant
	// turn, so the conversation can be replayed to the model verbatim.
	ToolCalls []ToolCall
}

// ToolCall is a single tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON object
}

// Tool declares a callable operation to the model.
type Tool struct {
	Name        string
	Description string

	// Parameters is the JSON schema describing the tool's arguments.
	Parameters map[string]any
}

// TokenUsage reports the token accounting of one completion.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the model's reply to a chat request. ToolCalls is non-empty
// when the model wants tools executed before it can answer.
type Response struct {
	Content      string
	ToolCalls    []ToolCall
	FinishReason string
	Model        string
	Usage        *TokenUsage
}

// Client is the interface to a chat-completion model.
type Client interface {
	// Chat sends the conversation so far, together with the tools the
	// model may call, and returns the model's next turn.
	Chat(ctx context.Context, messages []Message, tools []Tool) (*Response, error)

	// Close releases any resources held by the client.
	Close() error
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NewToolMessage creates the reply to the tool call identified by
// toolCallID.
func NewToolMessage(toolCallID, content string) Message {
	return Message{Role: RoleTool, ToolCallID: toolCallID, Content: content}
}
