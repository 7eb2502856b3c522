package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// APIError is the structured error body consumed by clients.
type APIError struct {
	Error      bool        `json:"error"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	StatusCode int         `json:"status_code"`
	TraceID    string      `json:"trace_id,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, errorCode, message string) {
	c.JSON(code, APIError{
		Error:      true,
		ErrorCode:  errorCode,
		Message:    message,
		StatusCode: code,
		TraceID:    traceID(c),
	})
}

// HandleServiceError normalizes every engine failure into the structured
// error shape. Internal stage errors never leak raw third-party payloads.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrAPIKeyMissing):
		RespondError(c, http.StatusBadRequest, "API_KEY_ERROR", "required API key is not configured")
	case errors.Is(err, ErrRateLimited):
		RespondError(c, http.StatusTooManyRequests, "RATE_LIMIT_ERROR", "external source rate limit reached, retry later")
	case errors.Is(err, ErrTimeout):
		RespondError(c, http.StatusRequestTimeout, "TIMEOUT_ERROR", "request timed out")
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", err.Error())
	case func() bool { var e *ExternalSourceError; return errors.As(err, &e) }():
		log.Printf("external source error: %v", err)
		RespondError(c, http.StatusBadGateway, "EXTERNAL_API_ERROR", "an external data source is unavailable")
	default:
		log.Printf("unhandled service error: %v", err)
		RespondError(c, http.StatusInternalServerError, "EXTERNAL_API_ERROR", "internal server error")
	}
}
