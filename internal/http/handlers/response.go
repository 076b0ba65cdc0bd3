// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by all endpoints. Every
// failure is written as an ErrorResponse with a stable code (see errors.go);
// writeServiceError is the single place where service error kinds become
// HTTP statuses.
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "reaction_conflict",
//	  "message": "reaction changed concurrently, retry"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-advent-calendar/internal/http/middleware"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
}

// fail aborts the request with an ErrorResponse. Statuses >= 500 are logged
// with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail() for the router's NoRoute/NoMethod
// handlers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// writeServiceError maps a service error to its HTTP status and code.
//
// Validation, not-found and conflict messages come from the sentinel and are
// safe to show. Storage failures are logged in full and answered with a
// generic message.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyDeclared):
		fail(c, http.StatusConflict, ErrCodeAlreadyDeclared, "already declared for this date")
		return
	case errors.Is(err, services.ErrReactionConflict):
		fail(c, http.StatusConflict, ErrCodeReactionConflict, "reaction changed concurrently, retry")
		return
	}

	switch services.KindOf(err) {
	case services.KindUnauthenticated:
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
	case services.KindDuplicateConflict:
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case services.KindNotFound:
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case services.KindValidationFailure:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		_ = c.Error(err)
		middleware.LoggerFrom(c).Error().Err(err).Msg("service failure")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

// ok writes body as JSON with status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
