package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ecoruta/internal/service"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID       = "userID"
	ContextSessionToken = "sessionToken"
)

// AuthMiddleware resolves the bearer token to a session and stores the user
// ID on the context. Requests without a valid session are rejected.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": service.TranslateAuthError(service.ErrSessionExpired),
			})
			return
		}

		session, err := auth.CurrentSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": service.TranslateAuthError(err),
			})
			return
		}

		c.Set(ContextUserID, session.UserID)
		c.Set(ContextSessionToken, session.Token)
		c.Next()
	}
}
