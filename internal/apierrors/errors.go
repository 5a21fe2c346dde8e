package apierrors

import (
	"net/http"

	"ari-server/internal/observability"

	"github.com/gin-gonic/gin"
)

var logger = observability.NewLogger()

// ErrorResponse is the JSON structure returned to API clients. Every error
// path carries success:false so dashboard code can branch on a single field.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respond writes the error response and logs correlation info
func respond(c *gin.Context, statusCode int, message string) {
	ctx := c.Request.Context()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: statusCode},
		observability.Field{Key: "error_message", Value: message},
	)
	logger.Info(ctx, "API error response")

	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, message)
}

// ValidationError sends a 400 response for request binding failures
func ValidationError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	logger.InfoWithError(ctx, "request validation failed", err)
	respond(c, http.StatusBadRequest, "Invalid request data")
}

// InternalError sends a sanitized 500 response - never exposes internal details
func InternalError(c *gin.Context, message string, internalErr error) {
	ctx := c.Request.Context()
	logger.Error(ctx, "internal error", internalErr)
	respond(c, http.StatusInternalServerError, message)
}
