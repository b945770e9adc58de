package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"chatcore.dev/chatstream/provider"
	"chatcore.dev/chatstream/streamevent"
)

func TestChatAgentFinishesWithoutToolCalls(t *testing.T) {
	srv := newFakeOpenAIServer([][]string{{
		`{"id":"1","object":"chat.completion.chunk","created":1,"model":"gpt-test","choices":[{"index":0,"delta":{"content":"Hello"}}]}`,
		`{"id":"1","object":"chat.completion.chunk","created":1,"model":"gpt-test","choices":[{"index":0,"delta":{"content":" there"},"finish_reason":"stop"}]}`,
	}})
	defer srv.Close()

	a := ChatAgent{
		Client:   newTestClient(srv),
		Model:    "gpt-test",
		Messages: []provider.ClientMessage{{Role: "user", Content: "hi"}},
	}

	events := make(chan streamevent.Event, 32)
	a.Run(context.Background(), events)
	close(events)

	var types []string
	for e := range events {
		types = append(types, e.Type())
	}

	require.Equal(t, []string{"start", "text-start", "text-delta", "text-delta", "text-end", "finish"}, types)
}

func TestChatAgentRunsToolCallThenSecondRound(t *testing.T) {
	srv := newFakeOpenAIServer([][]string{
		{
			`{"id":"1","object":"chat.completion.chunk","created":1,"model":"gpt-test","choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"id":"call_1","type":"function","function":{"name":"echo","arguments":""}}]}}]}`,
			`{"id":"1","object":"chat.completion.chunk","created":1,"model":"gpt-test","choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"{\"message\":\"hi\"}"}}]},"finish_reason":"tool_calls"}]}`,
		},
		{
			`{"id":"2","object":"chat.completion.chunk","created":1,"model":"gpt-test","choices":[{"index":0,"delta":{"content":"done"},"finish_reason":"stop"}]}`,
		},
	})
	defer srv.Close()

	caller := stubCaller{name: "echo", output: map[string]any{"message": "hi"}}

	a := ChatAgent{
		Client:   newTestClient(srv),
		Model:    "gpt-test",
		Messages: []provider.ClientMessage{{Role: "user", Content: "hi"}},
		Caller:   caller,
	}

	events := make(chan streamevent.Event, 64)
	a.Run(context.Background(), events)
	close(events)

	var types []string
	for e := range events {
		types = append(types, e.Type())
	}

	require.Contains(t, types, "tool-input-start")
	require.Contains(t, types, "tool-input-available")
	require.Contains(t, types, "tool-output-available")
	require.Equal(t, "finish", types[len(types)-1])
}

type stubCaller struct {
	name   string
	output any
}

func (s stubCaller) Has(name string) bool { return name == s.name }

func (s stubCaller) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	return s.output, nil
}
