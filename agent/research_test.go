package agent

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"chatcore.dev/chatstream/provider"
	"chatcore.dev/chatstream/streamevent"
)

func TestResearchAgentEmitsScriptedProgressThenText(t *testing.T) {
	srv := newFakeOpenAIServer([][]string{{
		`{"id":"1","object":"chat.completion.chunk","created":1,"model":"gpt-test","choices":[{"index":0,"delta":{"content":"Conclusion."},"finish_reason":"stop"}]}`,
	}})
	defer srv.Close()

	a := ResearchAgent{
		Client:   newTestClient(srv),
		Model:    "gpt-test",
		Messages: []provider.ClientMessage{{Role: "user", Content: "research this"}},
		Rand:     rand.New(rand.NewSource(1)),
	}

	events := make(chan streamevent.Event, 64)
	a.Run(context.Background(), events)
	close(events)

	var types []string
	for e := range events {
		types = append(types, e.Type())
	}

	require.Equal(t, "start", types[0])
	require.Equal(t, "data-start-label", types[1])
	require.Equal(t, "data-end-label", types[len(types)-5])
	require.Equal(t, "text-start", types[len(types)-4])
	require.Equal(t, "text-delta", types[len(types)-3])
	require.Equal(t, "text-end", types[len(types)-2])
	require.Equal(t, "finish", types[len(types)-1])

	var stepCount int
	for _, typ := range types {
		if typ == "data-step" {
			stepCount++
		}
	}
	require.GreaterOrEqual(t, stepCount, 4) // 3-6 search rounds + 1 summarizing step
}
