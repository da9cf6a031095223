package handlers

import (
	"fmt"
	"net/http"

	"bustracker/internal/http/middleware"
	"bustracker/internal/repositories"
	"bustracker/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/driver/route-sheet?userId=
func (a *API) RouteSheetPDF(c *gin.Context) {
	userID, ok := a.driverUserID(c)
	if !ok {
		RespondError(c, http.StatusBadRequest, "User ID is required.")
		return
	}

	svc := services.DocsService{
		Repo:      repositories.BusInfoRepository{DB: a.querier()},
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateRouteSheet(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
