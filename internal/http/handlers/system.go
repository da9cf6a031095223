package handlers

import (
	"context"
	"net/http"
	"sync"

	intconfig "bustracker/internal/config"
	"bustracker/internal/http/middleware"
	"bustracker/internal/repositories"
	"bustracker/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/endpoints.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "bus tracker backend running"})
}

func (a *API) DBCheck(c *gin.Context) {
	if err := a.ping(c.Request.Context()); err != nil {
		utils.LogError(middleware.GetRequestID(c), "system", "db_check", "ping failed", err)
		RespondError(c, http.StatusServiceUnavailable, "Database not connected.")
		return
	}
	count, err := repositories.UserRepository{DB: a.querier()}.Count(c.Request.Context())
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "system", "db_check", "count users failed", err)
		RespondError(c, http.StatusInternalServerError, "Database query error.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database connection OK", "users_in_db": count})
}

func (a *API) ping(ctx context.Context) error {
	if a.DB != nil {
		return a.DB.PingContext(ctx)
	}
	return intconfig.EnsureDB(ctx)
}

func Endpoints(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		RespondError(c, http.StatusServiceUnavailable, "Router not ready.")
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
