package types

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler utility functions to reduce duplication across handlers

// UserID extracts the caller identity from the X-User-ID header. Returns
// false and sends an error response if the header is absent.
func UserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "X-User-ID header is required",
		})
		return "", false
	}
	return userID, true
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Message: message})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Status: StatusError, Message: message})
}
