package provider

import "strings"

// ReasoningEffort is the per-model hint the Chat Agent passes to
// CreateChatCompletionStream. A zero value (Effort == "") means the model
// does not support reasoning and no hint is sent.
type ReasoningEffort struct {
	Effort  string
	Summary string
}

// reasoningModels lists the model-id substrings this deployment treats as
// reasoning-capable. Real reasoning support is provider metadata this
// service has no API to query, so the set is maintained here the way
// litellm.supports_reasoning's callers configure it upstream.
var reasoningModels = []string{"o1", "o3", "o4", "gpt-5"}

// BuildReasoningEffort computes the reasoning-effort hint for modelID: "low"
// in general, or {effort:"low", summary:"detailed"} when the model path
// contains "/responses/" (the Responses-API reasoning variant). Models
// outside reasoningModels get no hint at all.
func BuildReasoningEffort(modelID string) (ReasoningEffort, bool) {
	if !supportsReasoning(modelID) {
		return ReasoningEffort{}, false
	}
	if strings.Contains(modelID, "/responses/") {
		return ReasoningEffort{Effort: "low", Summary: "detailed"}, true
	}
	return ReasoningEffort{Effort: "low"}, true
}

func supportsReasoning(modelID string) bool {
	lower := strings.ToLower(modelID)
	for _, m := range reasoningModels {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
