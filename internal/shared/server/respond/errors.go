package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// StatusError sends the canned message for well-known statuses, falling back
// to a generic one. Mirrors the client-side error-formatting helper.
func StatusError(c *gin.Context, status int) {
	Error(c, status, codeForStatus(status), MessageForStatus(status), nil)
}

// MessageForStatus maps a status code to its user-facing message.
func MessageForStatus(status int) string {
	switch status {
	case http.StatusForbidden:
		return "You do not have permission to perform this action"
	case http.StatusNotFound:
		return "The requested resource was not found"
	case http.StatusTooManyRequests:
		return "Too many requests, please try again later"
	default:
		return "Something went wrong, please try again"
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusUnauthorized:
		return "unauthorized"
	default:
		return "internal_error"
	}
}
