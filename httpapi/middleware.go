package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chatcore.dev/chatstream/auth"
	"chatcore.dev/chatstream/reqctx"
)

// authMiddleware validates the Authorization: Bearer <jwt> header and binds
// the caller's user id onto the request context, matching the extractBearer
// + ValidateToken shape of a gin-less net/http auth middleware adapted to
// gin's context type.
func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := auth.VerifyToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		ctx := reqctx.WithCaller(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// storeMiddleware binds the data-store handle onto the request context,
// for tool callables reached deep inside the agent loop.
func storeMiddleware(store requestStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := reqctx.WithStore(c.Request.Context(), store)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// corsMiddleware mirrors sidekick's Origin-allowlist CORS middleware,
// applied to the caller-configured origin list instead of a derived
// localhost default.
func corsMiddleware(allowed map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if !allowed[origin] {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Credentials", "true")

			if c.Request.Method == http.MethodOptions {
				c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Authorization,Content-Type")
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		c.Next()
	}
}

func allowedOriginSet(origins []string) map[string]bool {
	set := make(map[string]bool, len(origins))
	for _, o := range origins {
		set[o] = true
	}
	return set
}
