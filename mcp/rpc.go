// Package mcp implements the Model Context Protocol client side: opening
// sessions to external tool servers over stdio or streamable-HTTP,
// performing the initialize handshake, listing tools, and calling them.
package mcp

import (
	"encoding/json"
	"fmt"
)

// DefaultProtocolVersion is the MCP protocol version this client negotiates.
const DefaultProtocolVersion = "2024-11-05"

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	ID      uint64 `json:"id"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
	ID      uint64          `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("mcp error %d: %s", e.Code, e.Message)
}

// Tool is one tool entry as returned by tools/list, before normalization.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type listToolsResult struct {
	Tools []Tool `json:"tools"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callToolResult struct {
	Content           []contentBlock  `json:"content"`
	IsError           bool            `json:"isError"`
	StructuredContent json.RawMessage `json:"structuredContent"`
}

// resultToOutput converts a raw tools/call result into a value suitable for
// a tool-output-available event and for feeding back to the provider as
// tool-result content, mirroring the source's call_tool_result_to_message:
// prefer the first text block, else join every text block, else fall back
// to structured content, else the empty string. An isError result always
// becomes an error value instead.
func resultToOutput(raw json.RawMessage) (any, error) {
	var result callToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}

	if result.IsError {
		return map[string]any{"error": joinText(result.Content)}, nil
	}

	for _, block := range result.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	if joined := joinText(result.Content); joined != "" {
		return joined, nil
	}
	if len(result.StructuredContent) > 0 {
		var structured any
		if err := json.Unmarshal(result.StructuredContent, &structured); err != nil {
			return nil, err
		}
		return structured, nil
	}
	return "", nil
}

func joinText(blocks []contentBlock) string {
	var parts []string
	for _, b := range blocks {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	joined := parts[0]
	for _, p := range parts[1:] {
		joined += "\n" + p
	}
	return joined
}

// normalizeInputSchema defaults a tool's raw input schema so it is always a
// valid object schema, matching _normalize_input_schema.
func normalizeInputSchema(raw json.RawMessage) json.RawMessage {
	schema := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &schema)
	}
	if _, ok := schema["type"]; !ok {
		schema["type"] = "object"
	}
	if _, ok := schema["properties"]; !ok {
		schema["properties"] = map[string]any{}
	}
	if _, ok := schema["additionalProperties"]; !ok {
		schema["additionalProperties"] = false
	}
	out, err := json.Marshal(schema)
	if err != nil {
		return json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	}
	return out
}
