package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientbook/internal/api/dto"
	"github.com/rs/zerolog"
)

// ErrorHandlerMiddleware turns panics, and errors left on the context without
// a response, into a JSON 500.
func ErrorHandlerMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("panic", err).
					Str("request_id", GetRequestID(c)).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error:   "Internal Server Error",
					Message: "An unexpected error occurred",
					Code:    http.StatusInternalServerError,
				})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal Server Error",
				Message: c.Errors.Last().Error(),
				Code:    http.StatusInternalServerError,
			})
		}
	}
}
