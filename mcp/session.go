package mcp

import (
	"context"
	"encoding/json"
)

// Session is one live connection to an MCP server, after a successful
// initialize handshake.
type Session interface {
	ListTools(ctx context.Context) ([]Tool, error)
	CallTool(ctx context.Context, name string, args json.RawMessage) (any, error)
	Close() error
}

// StdioConfig configures a session spawned as a child process speaking MCP
// over its standard streams.
type StdioConfig struct {
	Command string
	Args    []string
	Env     map[string]string
}

// StreamableHTTPConfig configures a session speaking MCP over an HTTP
// streaming endpoint.
type StreamableHTTPConfig struct {
	URL     string
	APIKey  string
	Headers map[string]string
}

// ServerConfig is the union of the two transports a UserMcp row can
// describe; exactly one of Stdio or StreamableHTTP is set.
type ServerConfig struct {
	Name           string
	Stdio          *StdioConfig
	StreamableHTTP *StreamableHTTPConfig
}
