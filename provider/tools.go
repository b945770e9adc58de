package provider

import (
	openai "github.com/sashabaranov/go-openai"

	"chatcore.dev/chatstream/mcp"
	"chatcore.dev/chatstream/toolregistry"
)

// ToOpenAITools merges the local tool registry's definitions with whatever
// an MCP bridge discovered for this request into the wire shape
// CreateChatCompletionStream expects. Returns nil (not empty) when there are
// no tools at all, so callers can omit the field entirely the way the
// source passes tools=None.
func ToOpenAITools(defs []toolregistry.Definition, merged []mcp.MergedTool) []openai.Tool {
	if len(defs) == 0 && len(merged) == 0 {
		return nil
	}
	tools := make([]openai.Tool, 0, len(defs)+len(merged))
	for _, d := range defs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		})
	}
	for _, m := range merged {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        m.Name,
				Description: m.Description,
				Parameters:  m.InputSchema,
			},
		})
	}
	return tools
}
