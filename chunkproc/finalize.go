package chunkproc

import (
	"context"
	"encoding/json"
	"sort"

	"chatcore.dev/chatstream/streamevent"
	"chatcore.dev/chatstream/toolerr"
)

// Caller invokes a named tool with its parsed JSON arguments and returns a
// JSON-serializable result. Both the Tool Registry and the MCP Bridge
// implement it so the agent loop can treat local and remote tools alike.
type Caller interface {
	Call(ctx context.Context, name string, args json.RawMessage) (any, error)
	Has(name string) bool
}

// ToolCallResult is one completed tool call, ready to fold into the next
// round's OpenAI message list.
type ToolCallResult struct {
	ID        string
	Name      string
	Arguments string
	Output    any
}

// FinalizeToolCalls runs every accumulated tool call in ascending slot
// order, parsing its arguments, invoking the caller, and emitting the
// corresponding events. It returns the results needed to build the
// assistant/tool-role messages for the next round.
func FinalizeToolCalls(ctx context.Context, state *State, caller Caller) ([]streamevent.Event, []ToolCallResult) {
	var events []streamevent.Event
	var results []ToolCallResult

	for _, index := range sortedIndexes(state.ToolCalls) {
		tc := state.ToolCalls[index]
		if tc.ID == "" {
			continue
		}

		var args json.RawMessage
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			events = append(events, streamevent.NewToolOutputAvailable(tc.ID, json.RawMessage(`{"error":"Failed to parse arguments"}`)))
			results = append(results, ToolCallResult{ID: tc.ID, Name: tc.Name, Arguments: tc.Arguments, Output: map[string]string{"error": "Failed to parse arguments"}})
			continue
		}

		events = append(events, streamevent.NewToolInputAvailable(tc.ID, tc.Name, args))

		output, err := callTool(ctx, caller, tc.Name, args)
		outputJSON, marshalErr := json.Marshal(output)
		if marshalErr != nil {
			outputJSON = []byte(`null`)
		}

		if err != nil {
			events = append(events, streamevent.NewToolOutputError(tc.ID, err.Error()))
			results = append(results, ToolCallResult{ID: tc.ID, Name: tc.Name, Arguments: tc.Arguments, Output: map[string]string{"error": err.Error()}})
			continue
		}

		events = append(events, streamevent.NewToolOutputAvailable(tc.ID, outputJSON))
		results = append(results, ToolCallResult{ID: tc.ID, Name: tc.Name, Arguments: tc.Arguments, Output: output})

		if url, mediaType, ok := fileReference(output); ok {
			events = append(events, streamevent.NewFile(url, mediaType))
		}
	}

	return events, results
}

func callTool(ctx context.Context, caller Caller, name string, args json.RawMessage) (any, error) {
	if caller == nil || !caller.Has(name) {
		return nil, toolerr.Errorf("Tool %s not found", name)
	}
	out, err := caller.Call(ctx, name, args)
	if err != nil {
		return nil, toolerr.FromError(err)
	}
	return out, nil
}

// fileReference reports whether a tool's output object names a file, the
// way image-generation tools do.
func fileReference(output any) (url, mediaType string, ok bool) {
	m, isMap := output.(map[string]any)
	if !isMap {
		return "", "", false
	}
	url, _ = m["url"].(string)
	mediaType, _ = m["mediaType"].(string)
	if mediaType == "" {
		mediaType, _ = m["media_type"].(string)
	}
	return url, mediaType, url != "" && mediaType != ""
}

func sortedIndexes(m map[int]*ToolCallState) []int {
	idx := make([]int, 0, len(m))
	for i := range m {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
