package mcp

import "context"

// ProbeResult is the outcome of opening one server outside the streaming
// path, used by the MCP management API's "check" endpoint.
type ProbeResult struct {
	Status    string // "ok" or "error"
	ToolCount int
	Err       error
}

// Probe opens a session, lists its tools, and closes it again, reporting
// the outcome without touching any in-flight chat request's Bridge.
func Probe(ctx context.Context, cfg ServerConfig) ProbeResult {
	session, err := dial(ctx, cfg)
	if err != nil {
		return ProbeResult{Status: "error", Err: err}
	}
	defer session.Close()

	tools, err := session.ListTools(ctx)
	if err != nil {
		return ProbeResult{Status: "error", Err: err}
	}
	return ProbeResult{Status: "ok", ToolCount: len(tools)}
}
