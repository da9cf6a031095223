package middleware

import (
	"log"
	"strings"

	"bustracker/internal/auth"
	"bustracker/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// AuthOptional reads a Bearer token when present. Requests without one pass through anonymously;
// an invalid token is logged and ignored so the public endpoints keep working.
func AuthOptional(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || len(secret) == 0 {
			c.Next()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(secret, strings.TrimSpace(token))
		if err != nil {
			log.Printf("[AUTH] request_id=%s msg=invalid token err=%v", GetRequestID(c), err)
			c.Next()
			return
		}
		if !domain.Role(claims.Role).Valid() {
			log.Printf("[AUTH] request_id=%s msg=unknown role %q", GetRequestID(c), claims.Role)
			c.Next()
			return
		}

		c.Set(userIDKey, domain.ID(claims.UserID))
		c.Set(userRoleKey, claims.Role)
		c.Next()
	}
}

// GetRequestContext returns the authenticated caller, zero when anonymous.
func GetRequestContext(c *gin.Context) domain.RequestContext {
	var rc domain.RequestContext
	if c == nil {
		return rc
	}
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(domain.ID); ok {
			rc.UserID = id
		}
	}
	rc.Role = domain.Role(c.GetString(userRoleKey))
	return rc
}
