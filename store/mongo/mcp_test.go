package mongo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"chatcore.dev/chatstream/mcpconfig"
)

func TestMcpDocumentRoundTripsConfig(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	now := time.Now().UTC()

	cfg := mcpconfig.Config{
		Transport: mcpconfig.TransportStdio,
		Command:   "npx",
		Args:      []string{"-y", "server"},
		Env:       map[string]string{"KEY": "value"},
	}

	doc := fromConfig(id, userID, "search", cfg, now, now)
	domain := doc.toDomain()

	require.Equal(t, id, domain.ID)
	require.Equal(t, userID, domain.UserID)
	require.Equal(t, "search", domain.Name)
	require.Equal(t, cfg, domain.Config)
}
