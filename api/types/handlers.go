package types

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/killallgit/scribe-api/pkg/errors"
)

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body, expected JSON",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendError maps err to its HTTP status and writes an ErrorResponse.
// Messages of unexpected errors are not exposed.
func SendError(c *gin.Context, err error) {
	status := apperrors.GetHTTPCode(err)

	appErr, ok := apperrors.As(err)
	if !ok {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	})
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// SendServiceUnavailable is used when an optional subsystem is not configured
func SendServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: message})
}
