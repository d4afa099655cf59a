package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Service identity reported by the health check.
const (
	ServiceName    = "stock-trading-api"
	ServiceVersion = "1.0.0"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Health reports that the process is up. It does not touch the database or
// the market-data provider.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Router      / [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Service: ServiceName, Version: ServiceVersion})
}
