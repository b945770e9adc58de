package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultToOutputPrefersFirstTextBlock(t *testing.T) {
	out, err := resultToOutput(json.RawMessage(`{"content":[{"type":"text","text":"hello"},{"type":"text","text":"world"}]}`))
	require.NoError(t, err)
	require.Equal(t, "hello", out)
}

func TestResultToOutputJoinsWhenNoPlainTextBlock(t *testing.T) {
	out, err := resultToOutput(json.RawMessage(`{"content":[{"type":"other","text":"a"},{"type":"other","text":"b"}]}`))
	require.NoError(t, err)
	require.Equal(t, "a\nb", out)
}

func TestResultToOutputFallsBackToStructuredContent(t *testing.T) {
	out, err := resultToOutput(json.RawMessage(`{"structuredContent":{"temp":20}}`))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"temp": 20.0}, out)
}

func TestResultToOutputEmptyWhenNothingAvailable(t *testing.T) {
	out, err := resultToOutput(json.RawMessage(`{}`))
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestResultToOutputReportsErrorResults(t *testing.T) {
	out, err := resultToOutput(json.RawMessage(`{"isError":true,"content":[{"type":"text","text":"boom"}]}`))
	require.NoError(t, err)
	m, ok := out.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "boom", m["error"])
}

func TestNormalizeInputSchemaDefaultsMissingFields(t *testing.T) {
	out := normalizeInputSchema(json.RawMessage(`{}`))
	require.JSONEq(t, `{"type":"object","properties":{},"additionalProperties":false}`, string(out))

	out = normalizeInputSchema(nil)
	require.JSONEq(t, `{"type":"object","properties":{},"additionalProperties":false}`, string(out))

	out = normalizeInputSchema(json.RawMessage(`{"type":"object","properties":{"x":{"type":"string"}}}`))
	require.JSONEq(t, `{"type":"object","properties":{"x":{"type":"string"}},"additionalProperties":false}`, string(out))
}
