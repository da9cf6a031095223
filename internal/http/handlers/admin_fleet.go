package handlers

import (
	"net/http"
	"strings"

	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
	"bustracker/internal/http/middleware"
	"bustracker/internal/services"
	"bustracker/internal/utils"

	"github.com/gin-gonic/gin"
)

type busRequest struct {
	Action    string     `json:"action"`
	ID        domain.ID  `json:"id"`
	BusNumber *string    `json:"bus_number"`
	Capacity  *int       `json:"capacity" binding:"omitempty,gt=0"`
	DriverID  optionalID `json:"driver_id"`
	RouteID   optionalID `json:"route_id"`
}

type routeRequest struct {
	Action       string    `json:"action"`
	ID           domain.ID `json:"id"`
	RouteName    *string   `json:"route_name"`
	RouteDetails *string   `json:"route_details"`
}

func normalizeAction(s string) domain.Action {
	return domain.Action(strings.ToLower(strings.TrimSpace(s)))
}

func (a *API) fleetService(c *gin.Context) services.FleetService {
	return services.FleetService{DB: a.querier(), RequestID: middleware.GetRequestID(c)}
}

// POST /api/admin/buses
func (a *API) ManageBuses(c *gin.Context) {
	var req busRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	msg, err := a.fleetService(c).ManageBus(c.Request.Context(), models.BusCommand{
		Action:    normalizeAction(req.Action),
		ID:        req.ID,
		BusNumber: utils.TrimPtr(req.BusNumber),
		Capacity:  req.Capacity,
		DriverID:  req.DriverID.Ptr(),
		RouteID:   req.RouteID.Ptr(),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// POST /api/admin/routes
func (a *API) ManageRoutes(c *gin.Context) {
	var req routeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	msg, err := a.fleetService(c).ManageRoute(c.Request.Context(), models.RouteCommand{
		Action:       normalizeAction(req.Action),
		ID:           req.ID,
		RouteName:    utils.TrimPtr(req.RouteName),
		RouteDetails: utils.TrimPtr(req.RouteDetails),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
