package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ScaffRent/rental_logistics_app/internal/apperrors"
)

// Every endpoint answers with the same envelope: {"success": true, "data": ...}
// on the happy path and {"success": false, "message": ...} on failure. The
// backoffice frontend branches on the success flag.

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondServiceError maps a service-layer error onto the envelope. Known
// sentinel errors carry their own status and client-safe message; anything
// else is surfaced as a generic 500 with fallbackMessage so internals never
// leak to the client.
func respondServiceError(c *gin.Context, err error, fallbackMessage string) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		respondError(c, http.StatusBadRequest, clientMessage(err, fallbackMessage))
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, clientMessage(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		respondError(c, http.StatusConflict, clientMessage(err, "Request conflicts with current state"))
	case errors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, clientMessage(err, "Unauthorized"))
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(c, http.StatusForbidden, clientMessage(err, "Forbidden"))
	case errors.As(err, &appErr):
		respondError(c, appErr.Code, appErr.Message)
	default:
		respondError(c, http.StatusInternalServerError, fallbackMessage)
	}
}

// clientMessage prefers the message authored at the AppError construction
// site; wrapped sentinel errors without one fall back to the error text.
func clientMessage(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}
