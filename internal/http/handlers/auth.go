package handlers

import (
	"net/http"

	"bustracker/internal/http/middleware"
	"bustracker/internal/repositories"
	"bustracker/internal/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/login
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{
		Users:     repositories.UserRepository{DB: a.querier()},
		Secret:    []byte(a.Env.JWTSecret),
		TokenTTL:  a.Env.TokenTTL,
		RequestID: middleware.GetRequestID(c),
	}
	res, err := svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"role":    res.Role,
		"id":      res.ID,
		"token":   res.Token,
	})
}
