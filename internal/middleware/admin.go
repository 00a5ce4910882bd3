package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/askanon/board/internal/auth"
	"github.com/askanon/board/pkg/response"
)

// ContextAdminUser is the key for the authenticated admin username in the
// gin context.
const ContextAdminUser = "admin_user"

// RequireAdmin returns a middleware that validates the admin session cookie
// and aborts with 401 when it is missing, expired or tampered.
func RequireAdmin(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}
		c.Set(ContextAdminUser, claims.Username)
		c.Next()
	}
}
