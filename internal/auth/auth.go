// Package auth guards the server's HTTP surfaces with a static bearer token.
// Stdio MCP transport never goes through it.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Guard checks requests against the configured API token.
type Guard struct {
	token string
}

// NewGuard creates a guard for the given token.
func NewGuard(token string) *Guard {
	return &Guard{token: token}
}

// Allows reports whether the request carries the configured token as a
// Bearer credential. Empty tokens never match.
func (g *Guard) Allows(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return false
	}
	return token == g.token
}

// Middleware enforces the token check on a gin route group. Rejected
// requests get a 401 with a WWW-Authenticate challenge and a JSON error
// body, matching the REST surface's error shape.
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Allows(c.Request) {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
