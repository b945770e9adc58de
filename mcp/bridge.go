package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"chatcore.dev/chatstream/telemetry"
	"chatcore.dev/chatstream/toolregistry"
)

// MergedTool is one tool exposed by an MCP server, normalized into the
// shape the Tool Registry's Definition uses.
type MergedTool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// Bridge is the per-request scope owning every MCP session opened for one
// chat request. It is built once at request start via Open and released via
// Close on every exit path (normal completion, error, or cancellation).
type Bridge struct {
	sessions []Session
	tools    map[string]string // tool name -> owning server name, for diagnostics
	callers  map[string]Session
	merged   []MergedTool
	logger   telemetry.Logger
}

// Open dials a session for each config in order, skipping (and logging) any
// server that fails to open, initialize, or list tools; other servers and
// the caller's built-in tools keep working. existingNames seeds the
// collision set: an MCP tool whose name is already taken — by a built-in or
// by an earlier-listed server — is dropped silently.
func Open(ctx context.Context, configs []ServerConfig, existingNames map[string]bool, logger telemetry.Logger) *Bridge {
	if logger == nil {
		logger = telemetry.NoopLogger{}
	}
	b := &Bridge{
		callers: make(map[string]Session),
		logger:  logger,
	}
	taken := make(map[string]bool, len(existingNames))
	for name := range existingNames {
		taken[name] = true
	}

	for _, cfg := range configs {
		session, err := dial(ctx, cfg)
		if err != nil {
			logger.Warn(ctx, "mcp: skipping server", "server", cfg.Name, "error", err)
			continue
		}
		b.sessions = append(b.sessions, session)

		tools, err := session.ListTools(ctx)
		if err != nil {
			logger.Warn(ctx, "mcp: failed to list tools", "server", cfg.Name, "error", err)
			continue
		}
		for _, t := range tools {
			if taken[t.Name] {
				logger.Warn(ctx, "mcp: dropping colliding tool name", "server", cfg.Name, "tool", t.Name)
				continue
			}
			taken[t.Name] = true
			b.merged = append(b.merged, MergedTool{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema})
			b.callers[t.Name] = session
		}
	}
	return b
}

func dial(ctx context.Context, cfg ServerConfig) (Session, error) {
	if cfg.Stdio != nil {
		return dialStdio(ctx, *cfg.Stdio)
	}
	return dialStreamableHTTP(ctx, *cfg.StreamableHTTP)
}

// Tools returns the tool defs merged in from every successfully opened
// server, in discovery order.
func (b *Bridge) Tools() []MergedTool {
	return b.merged
}

// Has reports whether name resolves to an MCP tool held by this bridge.
func (b *Bridge) Has(name string) bool {
	_, ok := b.callers[name]
	return ok
}

// Call dispatches name to the server that owns it.
func (b *Bridge) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	session, ok := b.callers[name]
	if !ok {
		return nil, fmt.Errorf("mcp: tool %s not bound to any session", name)
	}
	return session.CallTool(ctx, name, args)
}

// Close releases every session this bridge opened, continuing past
// individual close failures so every session gets a chance to shut down.
func (b *Bridge) Close() {
	for _, s := range b.sessions {
		_ = s.Close()
	}
}

// MergedCaller adapts a Registry and a Bridge into a single
// chunkproc.Caller, local tools taking precedence.
type MergedCaller struct {
	Registry *toolregistry.Registry
	Bridge   *Bridge
}

func (m MergedCaller) Has(name string) bool {
	if m.Registry != nil && m.Registry.Has(name) {
		return true
	}
	return m.Bridge != nil && m.Bridge.Has(name)
}

func (m MergedCaller) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	if m.Registry != nil && m.Registry.Has(name) {
		return m.Registry.Call(ctx, name, args)
	}
	return m.Bridge.Call(ctx, name, args)
}
