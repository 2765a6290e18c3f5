package handlers

import (
	"errors"
	"net/http"

	"travel_backend/internal/repository"
	"travel_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: {success, message, data?,
// error?}, plus totalPages on paginated listings.

func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondPage(c *gin.Context, message string, data any, totalPages int) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"data":       data,
		"totalPages": totalPages,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Caller-fault conditions get 4xx, upstream and server faults 5xx. Signature
// and credential failures return a fixed message so internals never leak.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSignature):
		respondError(c, http.StatusBadRequest, "Invalid payment signature. Payment verification failed.")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrPaymentFailed),
		errors.Is(err, service.ErrUserBlocked),
		errors.Is(err, service.ErrUserSuspended),
		errors.Is(err, service.ErrEmailNotVerified):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrUserNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailExists), errors.Is(err, service.ErrPhoneExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrConflict):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrServiceUnavailable):
		respondError(c, http.StatusServiceUnavailable, "Payment service unavailable. Please contact support.")
	case errors.Is(err, service.ErrUpstream):
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Payment gateway error",
			"error":   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal Server Error",
			"error":   err.Error(),
		})
	}
}
