package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoadsEmbeddedSkills(t *testing.T) {
	c := New()

	content, ok := c.ContentByName("web-research")
	require.True(t, ok)
	require.Contains(t, content, "external sources")

	meta := c.Metadata()
	require.NotEmpty(t, meta)

	names := make(map[string]bool)
	for _, m := range meta {
		names[m.Name] = true
		require.NotEmpty(t, m.Description)
	}
	require.True(t, names["web-research"])
	require.True(t, names["pdf-writer"])
}

func TestContentByNameMissesUnknownSkill(t *testing.T) {
	c := New()
	_, ok := c.ContentByName("does-not-exist")
	require.False(t, ok)
}
