package provider

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"chatcore.dev/chatstream/chunkproc"
)

// StreamRequest is everything one round of the Chat Agent's loop needs to
// start a completion stream.
type StreamRequest struct {
	Model       string
	Messages    []openai.ChatCompletionMessage
	Tools       []openai.Tool
	Reasoning   ReasoningEffort
	Temperature float32
}

// StreamChunk is one adapted step of the underlying provider stream: either
// a Delta to fold into the turn's State, a terminal FinishReason, or a
// terminal Err. Exactly one of these is meaningful per chunk.
type StreamChunk struct {
	Delta        chunkproc.Delta
	FinishReason string
	Done         bool
	Err          error
}

// Stream opens a chat-completion stream and adapts each response chunk into
// the chunkproc.Delta shape on the returned channel. The channel is closed
// when the stream ends, whether by completion, error, or context
// cancellation; the final chunk sent for a clean end carries Done=true with
// no error.
func Stream(ctx context.Context, client *openai.Client, req StreamRequest) (<-chan StreamChunk, error) {
	openAIReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Tools:       req.Tools,
		Temperature: req.Temperature,
		Stream:      true,
	}
	// Only Reasoning.Effort is sent; Reasoning.Summary is not forwarded to
	// the provider.
	if req.Reasoning.Effort != "" {
		openAIReq.ReasoningEffort = req.Reasoning.Effort
	}

	stream, err := client.CreateChatCompletionStream(ctx, openAIReq)
	if err != nil {
		return nil, err
	}

	out := make(chan StreamChunk, 16)
	go pump(ctx, stream, out)
	return out, nil
}

func pump(ctx context.Context, stream *openai.ChatCompletionStream, out chan<- StreamChunk) {
	defer close(out)
	defer stream.Close()

	// send gives up once ctx is done, so a consumer that stopped reading
	// never leaves this goroutine blocked.
	send := func(c StreamChunk) bool {
		select {
		case out <- c:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			send(StreamChunk{Err: ctx.Err(), Done: true})
			return
		default:
		}

		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			send(StreamChunk{Done: true})
			return
		}
		if err != nil {
			send(StreamChunk{Err: err, Done: true})
			return
		}
		if len(resp.Choices) == 0 {
			continue
		}

		choice := resp.Choices[0]
		delta := chunkproc.Delta{
			Content:          choice.Delta.Content,
			ReasoningContent: choice.Delta.ReasoningContent,
		}
		for _, tc := range choice.Delta.ToolCalls {
			index := 0
			if tc.Index != nil {
				index = *tc.Index
			}
			if !send(StreamChunk{Delta: chunkproc.Delta{
				ToolCalls: []chunkproc.ToolCallDelta{{
					Index:     index,
					ID:        tc.ID,
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				}},
			}}) {
				return
			}
		}

		if delta.Content != "" || delta.ReasoningContent != "" {
			if !send(StreamChunk{Delta: delta}) {
				return
			}
		}

		if choice.FinishReason != "" {
			send(StreamChunk{FinishReason: string(choice.FinishReason), Done: true})
			return
		}
	}
}
