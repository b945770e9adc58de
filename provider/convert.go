package provider

import (
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"chatcore.dev/chatstream/chunkproc"
)

// ToOpenAIMessages flattens a ClientMessage sequence into the OpenAI wire
// shape. System messages pass their flat Content through unchanged.
// Assistant and user messages with Parts flatten to a plain string when
// every part is text, or to a multi-content array otherwise (multimodal
// providers).
func ToOpenAIMessages(messages []ClientMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, toOpenAIMessage(m))
	}
	return out
}

func toOpenAIMessage(m ClientMessage) openai.ChatCompletionMessage {
	if len(m.Parts) == 0 {
		return openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	if allText(m.Parts) {
		var sb strings.Builder
		for _, p := range m.Parts {
			sb.WriteString(p.Text)
		}
		return openai.ChatCompletionMessage{Role: m.Role, Content: sb.String()}
	}

	multi := make([]openai.ChatMessagePart, 0, len(m.Parts))
	for _, p := range m.Parts {
		switch p.Type {
		case PartText:
			multi = append(multi, openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: p.Text})
		case PartFileReference:
			multi = append(multi, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: p.URL},
			})
		}
	}
	return openai.ChatCompletionMessage{Role: m.Role, MultiContent: multi}
}

func allText(parts []ClientPart) bool {
	for _, p := range parts {
		if p.Type != PartText {
			return false
		}
	}
	return true
}

// AssistantToolCallMessage builds the assistant-role message the Chat Agent
// synthesizes between rounds: the partial text content plus the
// reconstructed tool calls, ready to append to the next round's message
// list.
func AssistantToolCallMessage(content string, results []chunkproc.ToolCallResult) openai.ChatCompletionMessage {
	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant}
	if content != "" {
		msg.Content = content
	}
	for _, r := range results {
		msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
			ID:   r.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      r.Name,
				Arguments: r.Arguments,
			},
		})
	}
	return msg
}

// ToolResultMessages builds one tool-role message per completed tool call,
// feeding each result back to the model.
func ToolResultMessages(results []chunkproc.ToolCallResult) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(results))
	for _, r := range results {
		out = append(out, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			ToolCallID: r.ID,
			Name:       r.Name,
			Content:    contentString(r.Output),
		})
	}
	return out
}

func contentString(output any) string {
	if s, ok := output.(string); ok {
		return s
	}
	b, err := json.Marshal(output)
	if err != nil {
		return ""
	}
	return string(b)
}
