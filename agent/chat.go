package agent

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"

	"chatcore.dev/chatstream/chunkproc"
	"chatcore.dev/chatstream/mcp"
	"chatcore.dev/chatstream/provider"
	"chatcore.dev/chatstream/streamevent"
	"chatcore.dev/chatstream/telemetry"
	"chatcore.dev/chatstream/toolregistry"
)

// ChatAgent drives the multi-round tool-using conversation: stream, check
// for pending tool calls, run them, append the results, stream again, until
// a round ends with no tool calls.
type ChatAgent struct {
	Client   *openai.Client
	Model    string
	Messages []provider.ClientMessage
	Tools    []toolregistry.Definition
	MCPTools []mcp.MergedTool
	Caller   chunkproc.Caller
	Logger   telemetry.Logger

	// Tracer and Metrics are optional; a nil value skips the corresponding
	// instrumentation instead of panicking.
	Tracer  telemetry.Tracer
	Metrics telemetry.Metrics
}

// chatState names the Chat Agent's state machine; it only makes each phase
// of Run explicit and is not reported in traces or logs.
type chatState int

const (
	stateInitial chatState = iota
	stateStreaming
	stateProcessingTools
	stateFinished
	stateError
)

func (a ChatAgent) Run(ctx context.Context, events chan<- streamevent.Event) {
	state := stateInitial
	messageID := newMessageID()
	if !emit(ctx, events, streamevent.NewStart(messageID)) {
		return
	}
	state = stateStreaming

	reasoning, _ := provider.BuildReasoningEffort(a.Model)
	tools := provider.ToOpenAITools(a.Tools, a.MCPTools)
	messages := provider.ToOpenAIMessages(a.Messages)

	var finishReason string
	var turnState *chunkproc.State

	for state == stateStreaming {
		turnState = chunkproc.New()
		a.incCounter("agent.turn.count", 1)

		chunks, err := provider.Stream(ctx, a.Client, provider.StreamRequest{
			Model:     a.Model,
			Messages:  messages,
			Tools:     tools,
			Reasoning: reasoning,
		})
		if err != nil {
			a.fail(ctx, events, err)
			return
		}

		for chunk := range chunks {
			if chunk.Err != nil {
				a.fail(ctx, events, chunk.Err)
				return
			}
			if chunk.FinishReason != "" {
				turnState.FinishReason = chunk.FinishReason
				finishReason = chunk.FinishReason
			}
			if !a.processDelta(ctx, events, chunk.Delta, turnState) {
				return
			}
		}

		if !turnState.HasPendingToolCalls() {
			state = stateFinished
			break
		}

		state = stateProcessingTools

		toolEvents, results := a.finalizeToolCalls(ctx, turnState)
		if !emitAll(ctx, events, toolEvents) {
			return
		}

		messages = append(messages, provider.AssistantToolCallMessage(turnState.CurrentTextContent, results))
		messages = append(messages, provider.ToolResultMessages(results)...)

		state = stateStreaming
	}

	if state == stateFinished {
		if turnState.ReasoningStarted {
			if !emit(ctx, events, streamevent.NewReasoningEnd(chunkproc.ReasoningStreamID)) {
				return
			}
		}
		if turnState.TextStarted {
			if !emit(ctx, events, streamevent.NewTextEnd(chunkproc.TextStreamID)) {
				return
			}
		}
		emit(ctx, events, streamevent.NewFinish(finishReason))
	}
}

// finalizeToolCalls wraps chunkproc.FinalizeToolCalls in a trace span and
// records its wall-clock duration, the way
// runtime/toolregistry/executor/executor.go wraps tool dispatch.
func (a ChatAgent) finalizeToolCalls(ctx context.Context, turnState *chunkproc.State) ([]streamevent.Event, []chunkproc.ToolCallResult) {
	tracer := a.Tracer
	if tracer == nil {
		tracer = telemetry.NoopTracer{}
	}

	ctx, span := tracer.Start(ctx, "agent.tool_round",
		otelTrace.WithSpanKind(otelTrace.SpanKindInternal),
		otelTrace.WithAttributes(attribute.Int("agent.tool_round.size", len(turnState.ToolCalls))),
	)
	defer span.End()

	start := time.Now()
	events, results := chunkproc.FinalizeToolCalls(ctx, turnState, a.Caller)
	a.recordTimer("agent.tool_round.duration", time.Since(start))

	if toolCallFailures(results) > 0 {
		span.SetStatus(codes.Error, "one or more tool calls failed")
	}
	return events, results
}

func toolCallFailures(results []chunkproc.ToolCallResult) int {
	n := 0
	for _, r := range results {
		if m, ok := r.Output.(map[string]string); ok {
			if _, hasErr := m["error"]; hasErr {
				n++
			}
		}
	}
	return n
}

func (a ChatAgent) incCounter(name string, value float64, tags ...string) {
	if a.Metrics == nil {
		return
	}
	a.Metrics.IncCounter(name, value, tags...)
}

func (a ChatAgent) recordTimer(name string, d time.Duration, tags ...string) {
	if a.Metrics == nil {
		return
	}
	a.Metrics.RecordTimer(name, d, tags...)
}

func (a ChatAgent) processDelta(ctx context.Context, events chan<- streamevent.Event, delta chunkproc.Delta, state *chunkproc.State) bool {
	if !emitAll(ctx, events, chunkproc.ProcessReasoning(delta, state)) {
		return false
	}
	if !emitAll(ctx, events, chunkproc.ProcessText(delta, state)) {
		return false
	}
	if !emitAll(ctx, events, chunkproc.ProcessContentParts(delta)) {
		return false
	}
	for _, tc := range delta.ToolCalls {
		if !emitAll(ctx, events, chunkproc.ProcessToolCallChunk(tc, state)) {
			return false
		}
	}
	return true
}

func (a ChatAgent) fail(ctx context.Context, events chan<- streamevent.Event, err error) {
	fatal(ctx, a.Logger, events, "chat agent stream error", err)
}
