package middleware

import (
	"net/http"
	"strings"

	"bustracker/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets through callers whose token role is in allowedRoles.
// AuthOptional must run first.
func RequireRoles(allowedRoles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(string(r)))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":    "Authentication required.",
				"request_id": GetRequestID(c),
			})
			return
		}

		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":    "Access denied.",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}
