package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptgate/console/internal/models"
	"github.com/promptgate/console/pkg/logger"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandler is a middleware that catches panics and errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered", fmt.Errorf("%v", r), map[string]interface{}{
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				})

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal server error",
					Message: "An unexpected error occurred",
					Code:    "INTERNAL_ERROR",
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			logger.Error("Request error", err.Err, map[string]interface{}{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			})

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error:   err.Error(),
					Message: "Request failed",
				})
			}
		}
	}
}

// RespondError maps the service error taxonomy onto HTTP statuses:
// validation failures are the caller's fault, missing identity is an
// auth problem, everything else (persistence included) is a 500
func RespondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: validationErr.Error(),
			Code:  "VALIDATION_ERROR",
		})
		return
	}

	if errors.Is(err, models.ErrNoIdentity) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Not authenticated",
			Code:  "UNAUTHORIZED",
		})
		return
	}

	logger.Error("Request failed", err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	})
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "Internal server error",
		Code:  "INTERNAL_ERROR",
	})
}
