// Package agent drives one assistant turn end to end: it owns the
// provider stream, the tool-execution loop, and the sequence of
// streamevent.Event values a request handler forwards to the SSE
// transport.
package agent

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"chatcore.dev/chatstream/streamevent"
	"chatcore.dev/chatstream/telemetry"
	"chatcore.dev/chatstream/toolerr"
)

// Agent runs one turn of a conversation, sending every emitted event on
// events before returning. It never closes events; the caller owns that.
type Agent interface {
	Run(ctx context.Context, events chan<- streamevent.Event)
}

// emit is a small helper every agent uses to forward an event unless the
// context has already been cancelled (a disconnected client).
func emit(ctx context.Context, events chan<- streamevent.Event, e streamevent.Event) bool {
	select {
	case events <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

func emitAll(ctx context.Context, events chan<- streamevent.Event, es []streamevent.Event) bool {
	for _, e := range es {
		if !emit(ctx, events, e) {
			return false
		}
	}
	return true
}

// newMessageID mirrors the original's f"{prefix}-{uuid.uuid4().hex}" with
// prefix "msg": a "msg-" tag followed by a bare 32-char hex UUID.
func newMessageID() string {
	return "msg-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func logError(ctx context.Context, logger telemetry.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	logger.Error(ctx, msg, "error", err.Error())
}

// fatal wraps err as a toolerr.AgentError and renders the single terminal
// `error` stream event every agent loop emits before returning.
func fatal(ctx context.Context, logger telemetry.Logger, events chan<- streamevent.Event, msg string, err error) {
	agentErr := toolerr.NewAgent(err)
	logError(ctx, logger, msg, agentErr)
	emit(ctx, events, streamevent.NewError(agentErr.Error()))
}
