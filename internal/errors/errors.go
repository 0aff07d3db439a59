package errors

import (
	"net/http"

	"codeberg.org/openshelf/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// represents a standardized error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	detail := message
	if err != nil {
		detail = message + ": " + sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Detail: detail})
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	detail := "validation failed"

	if err != nil {
		detail = "validation failed: " + sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Detail: detail})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	detail := message
	if err != nil {
		detail = message + ": " + sanitizeError(err)
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: detail})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{Detail: message})
}
