package streamevent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	cases := []struct {
		name     string
		evt      Event
		wantType string
		want     string
	}{
		{"start", NewStart("msg-1"), "start", `{"type":"start","messageId":"msg-1"}`},
		{"text-start", NewTextStart("text-1"), "text-start", `{"type":"text-start","id":"text-1"}`},
		{"text-delta", NewTextDelta("text-1", "hi"), "text-delta", `{"type":"text-delta","id":"text-1","delta":"hi"}`},
		{"text-end", NewTextEnd("text-1"), "text-end", `{"type":"text-end","id":"text-1"}`},
		{"reasoning-start", NewReasoningStart("reasoning-1"), "reasoning-start", `{"type":"reasoning-start","id":"reasoning-1"}`},
		{"reasoning-delta", NewReasoningDelta("reasoning-1", "hmm"), "reasoning-delta", `{"type":"reasoning-delta","id":"reasoning-1","delta":"hmm"}`},
		{"reasoning-end", NewReasoningEnd("reasoning-1"), "reasoning-end", `{"type":"reasoning-end","id":"reasoning-1"}`},
		{"tool-input-start", NewToolInputStart("call-1", "get_current_weather"), "tool-input-start", `{"type":"tool-input-start","toolCallId":"call-1","toolName":"get_current_weather"}`},
		{"tool-input-delta", NewToolInputDelta("call-1", `{"lat`), "tool-input-delta", `{"type":"tool-input-delta","toolCallId":"call-1","inputTextDelta":"{\"lat"}`},
		{"tool-input-available", NewToolInputAvailable("call-1", "get_current_weather", json.RawMessage(`{"latitude":1}`)), "tool-input-available", `{"type":"tool-input-available","toolCallId":"call-1","toolName":"get_current_weather","input":{"latitude":1}}`},
		{"tool-input-error", NewToolInputError("call-1", "get_current_weather", `{bad`, "Failed to parse arguments"), "tool-input-error", `{"type":"tool-input-error","toolCallId":"call-1","toolName":"get_current_weather","input":"{bad","errorText":"Failed to parse arguments"}`},
		{"tool-output-available", NewToolOutputAvailable("call-1", json.RawMessage(`{"temp":20}`)), "tool-output-available", `{"type":"tool-output-available","toolCallId":"call-1","output":{"temp":20}}`},
		{"tool-output-error", NewToolOutputError("call-1", "boom"), "tool-output-error", `{"type":"tool-output-error","toolCallId":"call-1","errorText":"boom"}`},
		{"file", NewFile("https://example.com/a.png", "image/png"), "file", `{"type":"file","url":"https://example.com/a.png","mediaType":"image/png"}`},
		{"data", NewData("step", json.RawMessage(`{"label":"Searching..."}`)), "data-step", `{"type":"data-step","data":{"label":"Searching..."}}`},
		{"finish", NewFinish("stop"), "finish", `{"type":"finish","finishReason":"stop"}`},
		{"error", NewError("provider unavailable"), "error", `{"type":"error","error":"provider unavailable"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.evt)
			require.NoError(t, err)
			require.JSONEq(t, tc.want, string(got))
			require.Equal(t, tc.wantType, tc.evt.Type())
		})
	}
}
