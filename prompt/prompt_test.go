package prompt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetByIDReturnsKnownPrompt(t *testing.T) {
	content, ok := GetByID("concise")
	require.True(t, ok)
	require.Contains(t, content, "briefly")
}

func TestGetByIDMissesUnknownPrompt(t *testing.T) {
	_, ok := GetByID("does-not-exist")
	require.False(t, ok)
}
