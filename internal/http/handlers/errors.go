package handlers

import (
	"errors"
	"net/http"

	"bustracker/internal/domain"
	"bustracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

const msgInternal = "Internal server error."

// RespondError sends the standard {message, request_id} payload.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
// Internal errors expose only their safe message; the cause was logged where it happened.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err), domain.IsInvalidAction(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error())
	case domain.IsInternal(err):
		var ie domain.InternalError
		errors.As(err, &ie)
		RespondError(c, http.StatusInternalServerError, ie.Error())
	default:
		RespondError(c, http.StatusInternalServerError, msgInternal)
	}
}
