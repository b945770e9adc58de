package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"chatcore.dev/chatstream/streamevent"
)

func TestPipeWritesHeadersAndFramedEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	SetHeaders(c)

	events := make(chan streamevent.Event, 2)
	events <- streamevent.NewStart("msg-1")
	events <- streamevent.NewFinish("stop")
	close(events)

	Pipe(c, events)

	require.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	require.Equal(t, "v1", w.Header().Get("x-vercel-ai-ui-message-stream"))
	require.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	require.Equal(t, "no", w.Header().Get("X-Accel-Buffering"))

	body := w.Body.String()
	require.Contains(t, body, `data: {"type":"start","messageId":"msg-1"}`+"\n\n")
	require.Contains(t, body, `data: {"type":"finish","finishReason":"stop"}`+"\n\n")
}

func TestPipeStopsOnClientDisconnect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil).WithContext(ctx)
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	events := make(chan streamevent.Event)
	cancel()
	Pipe(c, events)

	require.Empty(t, w.Body.String())
}
