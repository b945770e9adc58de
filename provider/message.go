// Package provider adapts between the UI-facing ClientMessage shape and the
// OpenAI chat-completions wire format, and drives the streaming call itself
// via github.com/sashabaranov/go-openai.
package provider

import "encoding/json"

// ClientMessage is one turn in the conversation the HTTP client sent.
// Either Content or Parts (or both) must carry non-empty payload for
// non-system roles.
type ClientMessage struct {
	Role    string           `json:"role"`
	Content string           `json:"content,omitempty"`
	Parts   []ClientPart     `json:"parts,omitempty"`
}

// ClientPart is one entry of a ClientMessage's ordered parts array.
type ClientPart struct {
	Type string `json:"type"` // "text" | "reasoning" | "tool-invocation" | "file-reference"

	Text string `json:"text,omitempty"`

	ToolCallID string          `json:"toolCallId,omitempty"`
	ToolName   string          `json:"toolName,omitempty"`
	Input      json.RawMessage `json:"input,omitempty"`
	Output     json.RawMessage `json:"output,omitempty"`

	URL       string `json:"url,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
}

const (
	PartText           = "text"
	PartReasoning      = "reasoning"
	PartToolInvocation = "tool-invocation"
	PartFileReference  = "file-reference"
)
