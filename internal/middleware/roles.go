package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles creates a middleware that rejects any session whose roles do
// not intersect the given allow-list. It must run after AuthMiddleware.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		session, ok := GetSessionFromContext(c)
		if !ok {
			logger.Error("Session not found in context for role check")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		for _, role := range session.Roles {
			if _, found := allowedSet[role]; found {
				c.Next()
				return
			}
		}

		logger.Warn("User lacks required role",
			slog.Any("user_roles", session.Roles),
			slog.Any("allowed_roles", allowed),
		)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden"})
	}
}
