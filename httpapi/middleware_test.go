package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"chatcore.dev/chatstream/auth"
	"chatcore.dev/chatstream/reqctx"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := gin.New()
	r.Use(authMiddleware("secret"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBindsCallerOnValidToken(t *testing.T) {
	userID := uuid.New()
	tok, err := auth.IssueToken("secret", userID)
	require.NoError(t, err)

	var sawCaller uuid.UUID
	r := gin.New()
	r.Use(authMiddleware("secret"))
	r.GET("/x", func(c *gin.Context) {
		sawCaller, _ = reqctx.Caller(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, userID, sawCaller)
}

func TestCorsMiddlewareRejectsDisallowedOrigin(t *testing.T) {
	r := gin.New()
	r.Use(corsMiddleware(allowedOriginSet([]string{"https://allowed.example"})))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCorsMiddlewareAllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(corsMiddleware(allowedOriginSet([]string{"https://allowed.example"})))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://allowed.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://allowed.example", w.Header().Get("Access-Control-Allow-Origin"))
}
