package handlers

import (
	"net/http"

	"tripapi/internal/domain"
	"tripapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps the error taxonomy to HTTP statuses. Validation and
// not-found are caller mistakes; unavailable and timeout carry a retry hint;
// everything else is an opaque 500 that never leaks query internals.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, "store_unavailable", "database temporarily unavailable, please retry")
	case domain.IsTimeout(err):
		respondError(c, http.StatusGatewayTimeout, "store_timeout", "database request timed out, please retry")
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error occurred")
	}
}
