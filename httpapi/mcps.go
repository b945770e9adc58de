package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chatcore.dev/chatstream/mcp"
	"chatcore.dev/chatstream/mcpconfig"
	"chatcore.dev/chatstream/reqctx"
)

type mcpRequest struct {
	Name      string            `json:"name"`
	Transport string            `json:"transport"`
	Command   string            `json:"command,omitempty"`
	Args      []string          `json:"args,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
	URL       string            `json:"url,omitempty"`
	APIKey    string            `json:"api_key,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

func (r mcpRequest) toConfig() mcpconfig.Config {
	return mcpconfig.Config{
		Transport: mcpconfig.Transport(r.Transport),
		Command:   r.Command,
		Args:      r.Args,
		Env:       r.Env,
		URL:       r.URL,
		APIKey:    r.APIKey,
		Headers:   r.Headers,
	}
}

type mcpResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Transport     string    `json:"transport"`
	LastStatus    string    `json:"last_status,omitempty"`
	LastToolCount int       `json:"last_tool_count,omitempty"`
}

func toMCPResponse(row mcpconfig.UserMcp) mcpResponse {
	return mcpResponse{
		ID:            row.ID,
		Name:          row.Name,
		Transport:     string(row.Config.Transport),
		LastStatus:    row.LastStatus,
		LastToolCount: row.LastToolCount,
	}
}

func (ctrl Controller) listMCPsHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	rows, err := ctrl.MCPs.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list mcps"})
		return
	}
	out := make([]mcpResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMCPResponse(row))
	}
	c.JSON(http.StatusOK, gin.H{"mcps": out})
}

func (ctrl Controller) createMCPHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	var req mcpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := ctrl.MCPs.Create(c.Request.Context(), userID, req.Name, req.toConfig())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toMCPResponse(row))
}

func (ctrl Controller) getMCPHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	row, found, err := ctrl.MCPs.Get(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get mcp"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "mcp not found"})
		return
	}
	c.JSON(http.StatusOK, toMCPResponse(row))
}

func (ctrl Controller) updateMCPHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req mcpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var name *string
	if req.Name != "" {
		name = &req.Name
	}
	var config *mcpconfig.Config
	if req.Transport != "" {
		c := req.toConfig()
		config = &c
	}

	row, found, err := ctrl.MCPs.Update(c.Request.Context(), id, userID, name, config)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "mcp not found"})
		return
	}
	c.JSON(http.StatusOK, toMCPResponse(row))
}

func (ctrl Controller) deleteMCPHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	deleted, err := ctrl.MCPs.Delete(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete mcp"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "mcp not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// checkMCPHandler opens the server outside the chat streaming path, reports
// {status, tool_count}, and persists the outcome onto the row.
func (ctrl Controller) checkMCPHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	row, found, err := ctrl.MCPs.Get(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get mcp"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "mcp not found"})
		return
	}

	result := mcp.Probe(c.Request.Context(), serverConfigFromUserMcp(row))
	if _, _, err := ctrl.MCPs.UpdateStatus(c.Request.Context(), id, userID, result.Status, result.ToolCount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist check result"})
		return
	}

	resp := gin.H{"status": result.Status, "tool_count": result.ToolCount}
	if result.Err != nil {
		resp["error"] = result.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
