package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientbook/internal/api/dto"
	"github.com/martijn/clientbook/internal/core/repository"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// respondRepositoryError maps a store failure to a response and records it
// on the context for the request logger.
func respondRepositoryError(c *gin.Context, err error) {
	c.Error(err)

	if repository.IsConstraintViolation(err) {
		respondError(c, http.StatusConflict, err.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, err.Error())
}
