package modelcatalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidAcceptsConfiguredModels(t *testing.T) {
	require.True(t, IsValid("openai/gpt-5"))
	require.True(t, IsValid("openai/responses/gpt-5"))
	require.False(t, IsValid("not-a-model"))
}

func TestDefaultIsFirstModel(t *testing.T) {
	require.Equal(t, List()[0].ID, Default())
}
