package handlers

import (
	"net/http"

	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
	"bustracker/internal/http/middleware"
	"bustracker/internal/repositories"
	"bustracker/internal/services"
	"bustracker/internal/utils"

	"github.com/gin-gonic/gin"
)

type memberRequest struct {
	Action      string     `json:"action"`
	ID          domain.ID  `json:"id"`
	Email       *string    `json:"email"`
	Password    *string    `json:"password"`
	Name        *string    `json:"name"`
	ContactInfo *string    `json:"contact_info"`
	BusID       optionalID `json:"bus_id"`
}

// command drops blank strings so they count as absent fields.
func (r memberRequest) command() models.MemberCommand {
	return models.MemberCommand{
		Action:      normalizeAction(r.Action),
		ID:          r.ID,
		Email:       utils.TrimPtr(r.Email),
		Password:    r.Password,
		Name:        utils.TrimPtr(r.Name),
		ContactInfo: utils.TrimPtr(r.ContactInfo),
		BusID:       r.BusID.Ptr(),
	}
}

// POST /api/admin/students
func (a *API) ManageStudents(c *gin.Context) {
	a.manageMembers(c, repositories.StudentEntity)
}

// POST /api/admin/drivers
func (a *API) ManageDrivers(c *gin.Context) {
	a.manageMembers(c, repositories.DriverEntity)
}

func (a *API) manageMembers(c *gin.Context, entity repositories.EntityDescriptor) {
	var req memberRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	cmd := req.command()
	if !validEmail(c, cmd.Email) {
		return
	}

	svc := services.MemberService{
		DB:            a.sqlDB(),
		Entity:        entity,
		HashPasswords: a.Env.HashPasswords,
		RequestID:     middleware.GetRequestID(c),
	}
	msg, err := svc.Manage(c.Request.Context(), cmd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
