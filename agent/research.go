package agent

import (
	"context"
	"math/rand"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"chatcore.dev/chatstream/chunkproc"
	"chatcore.dev/chatstream/provider"
	"chatcore.dev/chatstream/streamevent"
	"chatcore.dev/chatstream/telemetry"
)

var sampleDomains = []string{
	"example.com",
	"wikipedia.org",
	"github.com",
	"stackoverflow.com",
	"arxiv.org",
	"nature.com",
	"pubmed.ncbi.nlm.nih.gov",
	"scholar.google.com",
	"medium.com",
	"substack.com",
}

var sampleLabels = []string{
	"Looking up on the web...",
	"Digging deeper...",
	"I'm not sure if this is a good idea, but I'm gonna do it anyway...",
	"Brainstorming...",
	"Lemme look up some memes while I'm at it...",
	"Doing some research...",
	"I'm really not sure about this one...",
}

// ResearchAgent emits a scripted sequence of search-progress data parts
// before streaming the model's plain-text answer. It never offers tools and
// never negotiates reasoning effort.
type ResearchAgent struct {
	Client   *openai.Client
	Model    string
	Messages []provider.ClientMessage
	Logger   telemetry.Logger

	// Rand, when nil, defaults to a fresh source seeded from the current
	// time; tests inject a deterministic one.
	Rand *rand.Rand
}

func (a ResearchAgent) rng() *rand.Rand {
	if a.Rand != nil {
		return a.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (a ResearchAgent) Run(ctx context.Context, events chan<- streamevent.Event) {
	rng := a.rng()
	messageID := newMessageID()
	if !emit(ctx, events, streamevent.NewStart(messageID)) {
		return
	}

	if !a.emitDataPart(ctx, events, "start-label", map[string]any{"label": "Researching..."}) {
		return
	}

	rounds := 3 + rng.Intn(4) // 3..6 inclusive
	for i := 0; i < rounds; i++ {
		details := randomHosts(rng)
		payload := map[string]any{
			"label":   sampleLabels[rng.Intn(len(sampleLabels))],
			"details": details,
			"type":    "search",
		}
		if !a.emitDataPart(ctx, events, "step", payload) {
			return
		}
		if !sleepOrDone(ctx, randomDuration(rng, 500*time.Millisecond, 2*time.Second)) {
			return
		}
	}

	if !a.emitDataPart(ctx, events, "step", map[string]any{"label": "Summarizing the information...", "type": "status"}) {
		return
	}
	if !sleepOrDone(ctx, 300*time.Millisecond) {
		return
	}

	if !a.emitDataPart(ctx, events, "end-label", map[string]any{"label": "Research completed. Here is my conclusion:"}) {
		return
	}

	state := chunkproc.New()
	chunks, err := provider.Stream(ctx, a.Client, provider.StreamRequest{
		Model:    a.Model,
		Messages: provider.ToOpenAIMessages(a.Messages),
	})
	if err != nil {
		a.fail(ctx, events, err)
		return
	}

	var finishReason string
	for chunk := range chunks {
		if chunk.Err != nil {
			a.fail(ctx, events, chunk.Err)
			return
		}
		if chunk.FinishReason != "" {
			finishReason = chunk.FinishReason
		}
		if chunk.Delta.Content == "" {
			continue
		}
		if !emitAll(ctx, events, chunkproc.ProcessText(chunk.Delta, state)) {
			return
		}
	}

	// The Research Agent never offers tools, so its final stream always
	// completes a tool-free turn: close text the same way the Chat Agent
	// does at its own tool-free boundary.
	if state.TextStarted {
		if !emit(ctx, events, streamevent.NewTextEnd(chunkproc.TextStreamID)) {
			return
		}
	}
	emit(ctx, events, streamevent.NewFinish(finishReason))
}

func (a ResearchAgent) emitDataPart(ctx context.Context, events chan<- streamevent.Event, suffix string, data any) bool {
	e, err := chunkproc.ProcessDataPart(suffix, data)
	if err != nil {
		a.fail(ctx, events, err)
		return false
	}
	return emit(ctx, events, e)
}

func (a ResearchAgent) fail(ctx context.Context, events chan<- streamevent.Event, err error) {
	fatal(ctx, a.Logger, events, "research agent stream error", err)
}

func randomHosts(rng *rand.Rand) []string {
	n := 2 + rng.Intn(7) // 2..8 inclusive
	if n > len(sampleDomains) {
		n = len(sampleDomains)
	}
	perm := rng.Perm(len(sampleDomains))[:n]
	hosts := make([]string, 0, n)
	for _, idx := range perm {
		hosts = append(hosts, "www."+sampleDomains[idx])
	}
	return hosts
}

func randomDuration(rng *rand.Rand, min, max time.Duration) time.Duration {
	return min + time.Duration(rng.Int63n(int64(max-min)))
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
