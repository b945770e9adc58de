package chunkproc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessTextAccumulates(t *testing.T) {
	state := New()

	events := ProcessText(Delta{Content: "Hel"}, state)
	require.Len(t, events, 2)
	require.Equal(t, "text-start", events[0].Type())
	require.Equal(t, "text-delta", events[1].Type())

	events = ProcessText(Delta{Content: "lo"}, state)
	require.Len(t, events, 1)
	require.Equal(t, "text-delta", events[0].Type())
	require.Equal(t, "Hello", state.CurrentTextContent)
}

func TestProcessReasoningStartsOnce(t *testing.T) {
	state := New()

	events := ProcessReasoning(Delta{ReasoningContent: "thinking"}, state)
	require.Len(t, events, 2)
	require.Equal(t, "reasoning-start", events[0].Type())

	events = ProcessReasoning(Delta{ReasoningContent: " more"}, state)
	require.Len(t, events, 1)
	require.Equal(t, "reasoning-delta", events[0].Type())
}

func TestProcessToolCallChunkEmitsStartOnceThenDeltas(t *testing.T) {
	state := New()

	events := ProcessToolCallChunk(ToolCallDelta{Index: 0, ID: "call-1", Name: "get_current_weather"}, state)
	require.Len(t, events, 1)
	require.Equal(t, "tool-input-start", events[0].Type())

	events = ProcessToolCallChunk(ToolCallDelta{Index: 0, Arguments: `{"latitude":`}, state)
	require.Len(t, events, 1)
	require.Equal(t, "tool-input-delta", events[0].Type())

	events = ProcessToolCallChunk(ToolCallDelta{Index: 0, Arguments: `1}`}, state)
	require.Len(t, events, 1)
	require.Equal(t, `{"latitude":1}`, state.ToolCalls[0].Arguments)
}

func TestProcessContentPartsInfersMediaType(t *testing.T) {
	events := ProcessContentParts(Delta{ContentParts: []ContentPart{
		{Type: "image_url", ImageURL: "https://example.com/a.jpeg"},
		{Type: "image_url", ImageURL: "https://example.com/b.webp"},
		{Type: "text"},
	}})
	require.Len(t, events, 2)

	var first struct{ MediaType string `json:"mediaType"` }
	raw, err := json.Marshal(events[0])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &first))
	require.Equal(t, "image/jpeg", first.MediaType)
}

type stubCaller struct {
	out any
	err error
}

func (s stubCaller) Has(name string) bool { return true }
func (s stubCaller) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	return s.out, s.err
}

func TestFinalizeToolCallsParsesAndInvokes(t *testing.T) {
	state := New()
	state.ToolCalls[0] = &ToolCallState{ID: "call-1", Name: "get_current_weather", Arguments: `{"latitude":1,"longitude":2}`, Started: true}

	events, results := FinalizeToolCalls(context.Background(), state, stubCaller{out: map[string]any{"temperature": 20.0}})
	require.Len(t, events, 2)
	require.Equal(t, "tool-input-available", events[0].Type())
	require.Equal(t, "tool-output-available", events[1].Type())
	require.Len(t, results, 1)
	require.Equal(t, "call-1", results[0].ID)
}

func TestFinalizeToolCallsReportsMalformedArguments(t *testing.T) {
	state := New()
	state.ToolCalls[0] = &ToolCallState{ID: "call-1", Name: "get_current_weather", Arguments: `{not json`, Started: true}

	events, results := FinalizeToolCalls(context.Background(), state, stubCaller{})
	require.Len(t, events, 1)
	require.Equal(t, "tool-output-available", events[0].Type())
	require.Len(t, results, 1)
}

func TestFinalizeToolCallsUnknownTool(t *testing.T) {
	state := New()
	state.ToolCalls[0] = &ToolCallState{ID: "call-1", Name: "nonexistent", Arguments: `{}`, Started: true}

	caller := stubCaller{}
	events, _ := FinalizeToolCalls(context.Background(), state, unknownCaller{})
	require.Len(t, events, 2)
	require.Equal(t, "tool-output-error", events[1].Type())
	_ = caller
}

type unknownCaller struct{}

func (unknownCaller) Has(name string) bool { return false }
func (unknownCaller) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	return nil, nil
}
