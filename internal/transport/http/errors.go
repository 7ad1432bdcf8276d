package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownVariant), errors.Is(err, domain.ErrInvalidMove):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrGameOver), errors.Is(err, domain.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, message string, err error) {
	c.JSON(statusFor(err), gin.H{"message": message, "error": err.Error()})
}
