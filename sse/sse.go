// Package sse writes streamevent.Event values onto a gin response as
// AI-SDK-compatible Server-Sent Events: one compact JSON object per event,
// `data: `-prefixed, `\n\n`-terminated.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatcore.dev/chatstream/streamevent"
)

// SetHeaders applies the exact response-header contract the AI SDK's
// UI-message stream reader expects, before the first byte is written.
func SetHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("x-vercel-ai-ui-message-stream", "v1")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
}

// Pipe drains events onto c's response body until events closes or the
// client disconnects, then returns. The caller is responsible for running
// the producer (an Agent) concurrently and closing events when it's done.
func Pipe(c *gin.Context, events <-chan streamevent.Event) {
	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(c, e); err != nil {
				return
			}
		}
	}
}

func writeEvent(c *gin.Context, e streamevent.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}
