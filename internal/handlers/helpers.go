package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/middleware"
	"stocktrader/internal/validator"
)

// ErrorResponse represents an error response.
type ErrorResponse = middleware.ErrorResponse

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// pathSymbol returns the :symbol path parameter if it looks like a ticker.
func pathSymbol(c *gin.Context) (string, error) {
	symbol := c.Param("symbol")
	if !validator.IsTicker(symbol) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid symbol")
	}
	return symbol, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondError(c, err)
}

// badRequest reports a binding failure.
func badRequest(c *gin.Context, err error) {
	respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
}
