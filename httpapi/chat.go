package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chatcore.dev/chatstream/agent"
	"chatcore.dev/chatstream/mcp"
	"chatcore.dev/chatstream/mcpconfig"
	"chatcore.dev/chatstream/modelcatalog"
	"chatcore.dev/chatstream/prompt"
	"chatcore.dev/chatstream/provider"
	"chatcore.dev/chatstream/reqctx"
	"chatcore.dev/chatstream/sse"
	"chatcore.dev/chatstream/streamevent"
	"chatcore.dev/chatstream/toolerr"
	"chatcore.dev/chatstream/toolregistry"
	"chatcore.dev/chatstream/toolregistry/tools"
)

// builtinRegistry holds the local tools, reflected once when the package is
// initialised and shared read-only by every chat request.
var builtinRegistry, builtinRegistryErr = toolregistry.New(tools.NewWeather(nil), tools.LoadSkill{}, tools.UpdateSkill{})

// chatRequest is the body Vercel AI SDK's useChat posts.
type chatRequest struct {
	Messages []provider.ClientMessage `json:"messages"`
	ModelID  string                   `json:"modelId"`
	PromptID string                   `json:"promptId"`
	AgentID  string                   `json:"agentId"`
}

// chatHandler decodes the request, resolves model/system-prompt/skills,
// opens the caller's MCP sessions for the duration of this request, then
// runs the selected agent and pipes its events to the client via SSE.
// Mirrors original_source/backend/app/api/v1/chat.py's handle_chat.
func (ctrl Controller) chatHandler(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	modelID := req.ModelID
	if modelID == "" {
		modelID = modelcatalog.Default()
	} else if !modelcatalog.IsValid(modelID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid modelId: " + modelID})
		return
	}

	if req.AgentID == "" {
		req.AgentID = "chat"
	}
	if req.AgentID != "chat" && req.AgentID != "research" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown agentId: " + req.AgentID})
		return
	}

	userID, ok := reqctx.Caller(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated caller"})
		return
	}

	messages := req.Messages
	if req.PromptID != "" {
		if content, ok := prompt.GetByID(req.PromptID); ok {
			messages = append([]provider.ClientMessage{{Role: "system", Content: content}}, messages...)
		}
	}
	messages = append([]provider.ClientMessage{{Role: "system", Content: ctrl.Skills.AvailableSkillsXML()}}, messages...)

	ctx := c.Request.Context()

	registry, err := builtinRegistry, builtinRegistryErr
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build tool registry"})
		return
	}

	serverConfigs, err := ctrl.mcpServerConfigs(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mcp configs"})
		return
	}
	existingNames := make(map[string]bool)
	for _, def := range registry.Definitions() {
		existingNames[def.Name] = true
	}
	bridge := mcp.Open(ctx, serverConfigs, existingNames, ctrl.Logger)
	defer bridge.Close()

	if ctrl.Metrics != nil {
		ctrl.Metrics.IncCounter("http.chat.requests", 1, "agentId", req.AgentID)
	}

	var a agent.Agent
	switch req.AgentID {
	case "research":
		a = agent.ResearchAgent{Client: ctrl.OpenAI, Model: modelID, Messages: messages, Logger: ctrl.Logger}
	default:
		a = agent.ChatAgent{
			Client:   ctrl.OpenAI,
			Model:    modelID,
			Messages: messages,
			Tools:    registry.Definitions(),
			MCPTools: bridge.Tools(),
			Caller:   mcp.MergedCaller{Registry: registry, Bridge: bridge},
			Logger:   ctrl.Logger,
			Tracer:   ctrl.Tracer,
			Metrics:  ctrl.Metrics,
		}
	}

	sse.SetHeaders(c)

	events := make(chan streamevent.Event, 64)
	go func() {
		defer close(events)
		defer func() {
			if r := recover(); r != nil {
				agentErr := toolerr.NewAgent(fmt.Errorf("agent panic: %v", r))
				if ctrl.Logger != nil {
					ctrl.Logger.Error(ctx, "agent panic", "error", agentErr.Error(), "stack", string(debug.Stack()))
				}
				select {
				case events <- streamevent.NewError(agentErr.Error()):
				case <-ctx.Done():
				}
			}
		}()
		a.Run(ctx, events)
	}()
	sse.Pipe(c, events)
}

// mcpServerConfigs loads the caller's configured MCP servers and adapts
// them into the shape the MCP Client & Tool Bridge dials.
func (ctrl Controller) mcpServerConfigs(ctx context.Context, userID uuid.UUID) ([]mcp.ServerConfig, error) {
	rows, err := ctrl.MCPs.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]mcp.ServerConfig, 0, len(rows))
	for _, row := range rows {
		out = append(out, serverConfigFromUserMcp(row))
	}
	return out, nil
}

func serverConfigFromUserMcp(row mcpconfig.UserMcp) mcp.ServerConfig {
	cfg := mcp.ServerConfig{Name: row.Name}
	switch row.Config.Transport {
	case mcpconfig.TransportStdio:
		cfg.Stdio = &mcp.StdioConfig{Command: row.Config.Command, Args: row.Config.Args, Env: row.Config.Env}
	case mcpconfig.TransportStreamableHTTP:
		cfg.StreamableHTTP = &mcp.StreamableHTTPConfig{URL: row.Config.URL, APIKey: row.Config.APIKey, Headers: row.Config.Headers}
	}
	return cfg
}
