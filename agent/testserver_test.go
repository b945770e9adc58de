package agent

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	openai "github.com/sashabaranov/go-openai"
)

// newFakeOpenAIServer replies to each POST /chat/completions with a
// Server-Sent-Events body built from the next entry in responses (the last
// entry repeats for any extra call), mimicking the OpenAI streaming wire
// format closely enough for provider.Stream to parse.
func newFakeOpenAIServer(responses [][]string) *httptest.Server {
	var call int64
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := atomic.AddInt64(&call, 1) - 1
		lines := responses[len(responses)-1]
		if int(i) < len(responses) {
			lines = responses[i]
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher := w.(http.Flusher)
		for _, line := range lines {
			fmt.Fprintf(w, "data: %s\n\n", line)
			flusher.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}))
}

func newTestClient(srv *httptest.Server) *openai.Client {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	return openai.NewClientWithConfig(cfg)
}
