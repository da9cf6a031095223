package api

import (
	"log"

	intconfig "bustracker/internal/config"
	"bustracker/internal/domain"
	h "bustracker/internal/http/handlers"
	"bustracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, a *h.API) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.AuthOptional([]byte(env.JWTSecret)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.GET("/", a.Index)
	r.NoRoute(a.NoRoute)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", a.DBCheck)
		api.GET("/endpoints", h.Endpoints)

		api.POST("/login", a.Login)

		api.GET("/student/businfo", a.StudentBusInfo)
		api.GET("/driver/businfo", a.DriverBusInfo)
		api.GET("/driver/route-sheet", a.RouteSheetPDF)

		admin := api.Group("/admin")
		if env.AdminAuthRequired {
			admin.Use(middleware.RequireRoles(domain.RoleAdmin))
		}
		admin.POST("/students", a.ManageStudents)
		admin.POST("/drivers", a.ManageDrivers)
		admin.POST("/buses", a.ManageBuses)
		admin.POST("/routes", a.ManageRoutes)
	}

	h.SetRouter(r)
	return r
}
