package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
)

// httpSession implements Session over MCP's streamable-HTTP transport: one
// JSON-RPC request per call, POSTed to a fixed endpoint.
type httpSession struct {
	endpoint string
	headers  map[string]string
	client   *http.Client
	id       uint64
}

func dialStreamableHTTP(ctx context.Context, cfg StreamableHTTPConfig) (Session, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("mcp: streamable-http config requires a url")
	}
	headers := map[string]string{}
	if cfg.APIKey != "" {
		headers["X-API-Key"] = cfg.APIKey
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	s := &httpSession{
		endpoint: cfg.URL,
		headers:  headers,
		client:   http.DefaultClient,
	}

	params := map[string]any{
		"protocolVersion": DefaultProtocolVersion,
		"clientInfo":      map[string]any{"name": "chatstream", "version": "dev"},
	}
	if err := s.call(ctx, "initialize", params, nil); err != nil {
		return nil, fmt.Errorf("mcp initialize failed: %w", err)
	}
	return s, nil
}

func (s *httpSession) ListTools(ctx context.Context) ([]Tool, error) {
	var result listToolsResult
	if err := s.call(ctx, "tools/list", nil, &result); err != nil {
		return nil, err
	}
	for i := range result.Tools {
		result.Tools[i].InputSchema = normalizeInputSchema(result.Tools[i].InputSchema)
	}
	return result.Tools, nil
}

func (s *httpSession) CallTool(ctx context.Context, name string, args json.RawMessage) (any, error) {
	params := map[string]any{"name": name, "arguments": args}
	var raw json.RawMessage
	if err := s.call(ctx, "tools/call", params, &raw); err != nil {
		return nil, err
	}
	return resultToOutput(raw)
}

// Close is a no-op: streamable-HTTP sessions hold no persistent connection
// beyond the shared http.Client, which has nothing to release per session.
func (s *httpSession) Close() error { return nil }

func (s *httpSession) nextID() uint64 {
	return atomic.AddUint64(&s.id, 1)
}

func (s *httpSession) call(ctx context.Context, method string, params any, result any) error {
	reqBody := rpcRequest{JSONRPC: "2.0", Method: method, ID: s.nextID(), Params: params}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mcp rpc status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return err
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if result != nil && len(rpcResp.Result) > 0 {
		return json.Unmarshal(rpcResp.Result, result)
	}
	return nil
}
