package chunkproc

import (
	"encoding/json"
	"strings"

	"chatcore.dev/chatstream/streamevent"
)

// ProcessReasoning emits reasoning-start (once) and reasoning-delta for a
// chunk that carries reasoning content. Returns nil events if the delta has
// none.
func ProcessReasoning(delta Delta, state *State) []streamevent.Event {
	if delta.ReasoningContent == "" {
		return nil
	}
	var events []streamevent.Event
	if !state.ReasoningStarted {
		events = append(events, streamevent.NewReasoningStart(ReasoningStreamID))
		state.ReasoningStarted = true
	}
	events = append(events, streamevent.NewReasoningDelta(ReasoningStreamID, delta.ReasoningContent))
	return events
}

// ProcessText emits text-start (once) and text-delta for a chunk that
// carries text content, accumulating it onto state.CurrentTextContent so the
// next assistant message sent back to the provider carries the partial text
// alongside any tool calls.
func ProcessText(delta Delta, state *State) []streamevent.Event {
	if delta.Content == "" {
		return nil
	}
	state.CurrentTextContent += delta.Content
	var events []streamevent.Event
	if !state.TextStarted {
		events = append(events, streamevent.NewTextStart(TextStreamID))
		state.TextStarted = true
	}
	events = append(events, streamevent.NewTextDelta(TextStreamID, delta.Content))
	return events
}

// ProcessFilePart emits a single file event.
func ProcessFilePart(url, mediaType string) streamevent.Event {
	return streamevent.NewFile(url, mediaType)
}

// ProcessDataPart emits a data-<suffix> event carrying an arbitrary
// JSON-serializable payload.
func ProcessDataPart(suffix string, data any) (streamevent.Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return streamevent.NewData(suffix, raw), nil
}

// ProcessContentParts walks a multimodal delta's content parts and emits a
// file event for each image_url part, inferring mediaType from the URL
// suffix.
func ProcessContentParts(delta Delta) []streamevent.Event {
	var events []streamevent.Event
	for _, part := range delta.ContentParts {
		if part.Type != "image_url" || part.ImageURL == "" {
			continue
		}
		events = append(events, ProcessFilePart(part.ImageURL, inferImageMediaType(part.ImageURL)))
	}
	return events
}

func inferImageMediaType(url string) string {
	switch {
	case strings.Contains(url, ".jpg"), strings.Contains(url, ".jpeg"):
		return "image/jpeg"
	case strings.Contains(url, ".gif"):
		return "image/gif"
	case strings.Contains(url, ".webp"):
		return "image/webp"
	default:
		return "image/png"
	}
}

// ProcessToolCallChunk folds one tool-call delta into the per-slot
// accumulator, emitting tool-input-start the first time both id and name are
// known and tool-input-delta for each subsequent arguments fragment.
func ProcessToolCallChunk(d ToolCallDelta, state *State) []streamevent.Event {
	tc := state.ToolCall(d.Index)

	if d.ID != "" {
		tc.ID = d.ID
	}
	if d.Name != "" {
		tc.Name = d.Name
	}
	if d.Arguments != "" {
		tc.Arguments += d.Arguments
	}

	var events []streamevent.Event
	if tc.ID != "" && tc.Name != "" && !tc.Started {
		events = append(events, streamevent.NewToolInputStart(tc.ID, tc.Name))
		tc.Started = true
	}
	if tc.Started && d.Arguments != "" {
		events = append(events, streamevent.NewToolInputDelta(tc.ID, d.Arguments))
	}
	return events
}
