// Package httpapi wires the gin router: JWT-authenticated CRUD over a
// caller's MCP server configs and skills, the SSE chat endpoint dispatching
// to the Chat or Research agent, and a liveness probe. Routing and
// handler idiom grounded on sidedotdev-sidekick/api/api.go and
// workspace_api.go (Controller + DefineRoutes, gin.H error bodies,
// ShouldBindJSON validation).
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"chatcore.dev/chatstream/mcpconfig"
	"chatcore.dev/chatstream/skill"
	"chatcore.dev/chatstream/telemetry"
)

// Controller holds every dependency the handlers need.
type Controller struct {
	OpenAI      *openai.Client
	MCPs        mcpconfig.Service
	Skills      skill.Service
	Store       requestStore
	AuthSecret  string
	AllowedCORS []string
	Logger      telemetry.Logger
	Tracer      telemetry.Tracer
	Metrics     telemetry.Metrics
	Pinger      func(ctx context.Context) error // reports Mongo reachability for /healthz
}

// NewRouter builds the gin engine with CORS, auth, and every route bound.
func NewRouter(ctrl Controller) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.ForwardedByClientIP = true
	r.SetTrustedProxies(nil)

	r.Use(corsMiddleware(allowedOriginSet(ctrl.AllowedCORS)))

	r.GET("/healthz", ctrl.healthzHandler)

	api := r.Group("/api")
	api.Use(authMiddleware(ctrl.AuthSecret))
	api.Use(storeMiddleware(ctrl.Store))

	api.POST("/chat", ctrl.chatHandler)

	mcps := api.Group("/mcps")
	mcps.GET("", ctrl.listMCPsHandler)
	mcps.POST("", ctrl.createMCPHandler)
	mcps.GET("/:id", ctrl.getMCPHandler)
	mcps.PUT("/:id", ctrl.updateMCPHandler)
	mcps.DELETE("/:id", ctrl.deleteMCPHandler)
	mcps.POST("/:id/check", ctrl.checkMCPHandler)

	skills := api.Group("/skills")
	skills.GET("", ctrl.listSkillsHandler)
	skills.POST("", ctrl.createSkillHandler)
	skills.GET("/:id", ctrl.getSkillHandler)
	skills.PUT("/:id", ctrl.updateSkillHandler)
	skills.DELETE("/:id", ctrl.deleteSkillHandler)

	return r
}

func (ctrl Controller) healthzHandler(c *gin.Context) {
	if ctrl.Pinger != nil {
		if err := ctrl.Pinger(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
