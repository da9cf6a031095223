package handlers

import (
	"net/http"
	"strings"

	"bustracker/internal/domain"
	"bustracker/internal/http/middleware"
	"bustracker/internal/repositories"
	"bustracker/internal/services"

	"github.com/gin-gonic/gin"
)

func (a *API) busInfoService(c *gin.Context) services.BusInfoService {
	return services.BusInfoService{
		Repo:      repositories.BusInfoRepository{DB: a.querier()},
		Locations: a.Locations,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/student/businfo?studentId=
// Without studentId the configured demo student is shown.
func (a *API) StudentBusInfo(c *gin.Context) {
	studentID := domain.ID(a.Env.DemoStudentID)
	if strings.TrimSpace(c.Query("studentId")) != "" {
		id, ok := queryID(c, "studentId")
		if !ok {
			RespondError(c, http.StatusBadRequest, "Invalid student ID.")
			return
		}
		studentID = id
	}

	info, err := a.busInfoService(c).StudentBusInfo(c.Request.Context(), studentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GET /api/driver/businfo?userId=
func (a *API) DriverBusInfo(c *gin.Context) {
	userID, ok := a.driverUserID(c)
	if !ok {
		RespondError(c, http.StatusBadRequest, "User ID is required.")
		return
	}

	info, err := a.busInfoService(c).DriverBusInfo(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// driverUserID prefers the userId query parameter and falls back to an authenticated driver.
func (a *API) driverUserID(c *gin.Context) (domain.ID, bool) {
	if strings.TrimSpace(c.Query("userId")) != "" {
		return queryID(c, "userId")
	}
	rc := middleware.GetRequestContext(c)
	if rc.Role == domain.RoleDriver && rc.UserID > 0 {
		return rc.UserID, true
	}
	return 0, false
}
