package toolregistry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Message string `json:"message" jsonschema:"description=Text to echo back."`
}

type echoTool struct{}

func (echoTool) Name() string        { return "echo" }
func (echoTool) Description() string { return "Echoes its input message back." }
func (echoTool) Args() any           { return &echoArgs{} }
func (echoTool) Call(ctx context.Context, raw json.RawMessage) (any, error) {
	var a echoArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return a.Message, nil
}

func TestNewReflectsArgumentSchema(t *testing.T) {
	reg, err := New(echoTool{})
	require.NoError(t, err)
	require.True(t, reg.Has("echo"))

	defs := reg.Definitions()
	require.Len(t, defs, 1)
	require.Equal(t, "echo", defs[0].Name)
	_, ok := defs[0].Parameters.Properties.Get("message")
	require.True(t, ok)
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New(echoTool{}, echoTool{})
	require.Error(t, err)
}

func TestCallDispatchesToRegisteredTool(t *testing.T) {
	reg, err := New(echoTool{})
	require.NoError(t, err)

	out, err := reg.Call(context.Background(), "echo", json.RawMessage(`{"message":"hi"}`))
	require.NoError(t, err)
	require.Equal(t, "hi", out)
}

func TestCallRejectsUnknownTool(t *testing.T) {
	reg, err := New(echoTool{})
	require.NoError(t, err)

	_, err = reg.Call(context.Background(), "nope", json.RawMessage(`{}`))
	require.Error(t, err)
}
